package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Services groups the use cases mounted under the versioned API.
type Services struct {
	Players      service.PlayerService
	Performances service.PerformanceService
	Leagues      service.LeagueService
	Teams        service.TeamService
	Analytics    service.AnalyticsService
}

// NewEngine builds a gin engine with request id, access log and recovery installed.
func NewEngine(logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), Recovery(logger))
	return r
}

// Register mounts all public routes on the given engine.
// Every /v0 request runs inside one store session that is released when the response is written.
func Register(r *gin.Engine, repo Pinger, sessions repository.SessionManager, svc Services) {
	h := NewHealthHandler(repo)

	r.GET("/", h.Root)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterDocs(r)

	api := r.Group(APIV0Prefix, Session(sessions))
	{
		NewPlayerHandler(svc.Players).Register(api)
		NewPerformanceHandler(svc.Performances).Register(api)
		NewLeagueHandler(svc.Leagues).Register(api)
		NewTeamHandler(svc.Teams).Register(api)
		NewAnalyticsHandler(svc.Analytics).Register(api)
	}
}
