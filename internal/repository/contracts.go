package repository

import (
	"context"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionFunc is the unit of work executed while a store handle is held.
// The handle travels in ctx; repositories pick it up transparently.
type SessionFunc func(ctx context.Context) error

// SessionManager scopes a store handle to one unit of work.
// The handle is released when fn returns, panics included.
type SessionManager interface {
	WithinSession(ctx context.Context, fn SessionFunc) error
}

// PlayerRepository declares read operations for players.
// Returned players carry their performances ordered by performance_id.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (model.Player, error)
	List(ctx context.Context, f PlayerFilter) ([]model.Player, error)
	Count(ctx context.Context) (int, error)
}

// PerformanceRepository declares read operations for weekly performances.
type PerformanceRepository interface {
	List(ctx context.Context, f PerformanceFilter) ([]model.Performance, error)
}

// LeagueRepository declares read operations for leagues.
// Returned leagues carry their teams ordered by team_id.
type LeagueRepository interface {
	GetByID(ctx context.Context, id int64) (model.League, error)
	List(ctx context.Context, f LeagueFilter) ([]model.League, error)
	Count(ctx context.Context) (int, error)
}

// TeamRepository declares read operations for teams.
// Returned teams carry their rostered players ordered by player_id.
type TeamRepository interface {
	List(ctx context.Context, f TeamFilter) ([]model.Team, error)
	Count(ctx context.Context) (int, error)
}
