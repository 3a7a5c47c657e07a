package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/maxviazov/swc-fantasy-api/internal/config"
	"github.com/maxviazov/swc-fantasy-api/internal/handler"
	"github.com/maxviazov/swc-fantasy-api/internal/logger"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/repository/postgres"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ .env not loaded: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load application config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Msg("✅ Logger initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectPgx, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer connectPgx.Close()

	pool := connectPgx.Pool()
	limits := service.Limits{MaxLimit: cfg.API.MaxLimit}
	players := postgres.NewPlayerRepository(pool)
	leagues := postgres.NewLeagueRepository(pool)
	teams := postgres.NewTeamRepository(pool)

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewEngine(appLogger)
	handler.Register(r, postgres.NewPinger(pool), postgres.NewSessionManager(pool), handler.Services{
		Players:      service.NewPlayerService(players, limits, appLogger),
		Performances: service.NewPerformanceService(postgres.NewPerformanceRepository(pool), limits, appLogger),
		Leagues:      service.NewLeagueService(leagues, limits, appLogger),
		Teams:        service.NewTeamService(teams, limits, appLogger),
		Analytics:    service.NewAnalyticsService(leagues, teams, players, appLogger),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.App.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.App.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("env", cfg.App.Env).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Error().Err(err).Msg("❌ HTTP server failed")
		}
	case <-ctx.Done():
		appLogger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("Graceful shutdown failed")
	}
	appLogger.Info().Msg("Service stopped")
}
