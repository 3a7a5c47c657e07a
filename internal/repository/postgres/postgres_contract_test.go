package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/maxviazov/swc-fantasy-api/internal/repository/contract"
	"github.com/maxviazov/swc-fantasy-api/internal/repository/memory"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	db     *sql.DB
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// opt-in: `make test-contract` (CONTRACT_TESTS=1)
		skippy = true
		os.Exit(m.Run())
	}
	os.Exit(runWithDatabase(m))
}

func runWithDatabase(m *testing.M) int {
	ctx := context.Background()
	dsn := buildDSNFromEnv()
	if dsn == "" {
		container, err := tcpostgres.Run(ctx, "postgres:16.3-alpine",
			tcpostgres.WithDatabase("swc"),
			tcpostgres.WithUsername("swc"),
			tcpostgres.WithPassword("secret"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Println("[contract] postgres container error:", err)
			return 1
		}
		defer func() { _ = container.Terminate(context.Background()) }()
		if dsn, err = container.ConnectionString(ctx, "sslmode=disable"); err != nil {
			fmt.Println("[contract] connection string error:", err)
			return 1
		}
	}

	var err error
	db, err = sql.Open("pgx", dsn)
	if err != nil {
		fmt.Println("[contract] sql open error:", err)
		return 1
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		fmt.Println("[contract] db ping error:", err)
		return 1
	}

	migrationsDir := filepath.Clean(filepath.Join("..", "..", "..", "migrations", "goose_sql"))
	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Println("[contract] goose dialect error:", err)
		return 1
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		fmt.Println("[contract] goose up error:", err)
		return 1
	}

	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		return 1
	}
	defer pool.Close()

	return m.Run()
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 (and optionally DATABASE_URL)")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	name := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), os.Getenv("POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || name == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, name, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := db.Exec(`TRUNCATE TABLE team_player, performance, team, league, player RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func seed(t *testing.T, fx memory.Fixture) {
	t.Helper()
	exec := func(query string, args ...any) {
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("seed %q: %v", query, err)
		}
	}
	for _, p := range fx.Players {
		exec(`INSERT INTO player (player_id, gsis_id, first_name, last_name, position, last_changed_date) VALUES ($1,$2,$3,$4,$5,$6)`,
			p.PlayerID, p.GSISID, p.FirstName, p.LastName, p.Position, p.LastChangedDate.Time)
	}
	for _, p := range fx.Performances {
		exec(`INSERT INTO performance (performance_id, player_id, week_number, fantasy_points, last_changed_date) VALUES ($1,$2,$3,$4,$5)`,
			p.PerformanceID, p.PlayerID, p.WeekNumber, p.FantasyPoints, p.LastChangedDate.Time)
	}
	for _, l := range fx.Leagues {
		exec(`INSERT INTO league (league_id, league_name, scoring_type, last_changed_date) VALUES ($1,$2,$3,$4)`,
			l.LeagueID, l.LeagueName, l.ScoringType, l.LastChangedDate.Time)
	}
	for _, tm := range fx.Teams {
		exec(`INSERT INTO team (team_id, league_id, team_name, last_changed_date) VALUES ($1,$2,$3,$4)`,
			tm.TeamID, tm.LeagueID, tm.TeamName, tm.LastChangedDate.Time)
	}
	for _, r := range fx.Rosters {
		exec(`INSERT INTO team_player (team_id, player_id, last_changed_date) VALUES ($1,$2,$3)`,
			r.TeamID, r.PlayerID, r.LastChangedDate.Time)
	}
}

func makeRepos(t *testing.T, fx memory.Fixture) (contract.Repos, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	seed(t, fx)
	return contract.Repos{
		Players:      NewPlayerRepository(pool),
		Performances: NewPerformanceRepository(pool),
		Leagues:      NewLeagueRepository(pool),
		Teams:        NewTeamRepository(pool),
		Sessions:     NewSessionManager(pool),
		Pinger:       NewPinger(pool),
	}, func() { truncateAll(t) }
}

func TestPostgresStore_Contract(t *testing.T) {
	contract.RunAll(t, makeRepos)
}

func TestSessionManager_NilPool(t *testing.T) {
	err := NewSessionManager(nil).WithinSession(context.Background(), func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for nil pool")
	}
}
