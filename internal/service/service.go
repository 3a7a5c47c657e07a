// Package service holds use-case orchestration between handlers and repositories.
// Kept intentionally lean: filter validation, NotFound shaping and logging.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 422).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error; nil when fe is empty.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// NotFoundError reports a missed lookup by id for one entity kind.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string { return e.Kind + " not found" }
func (e *NotFoundError) Unwrap() error { return repository.ErrNotFound }

// notFoundAs rewrites a bare repository miss into a kind-specific NotFoundError.
func notFoundAs(kind string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Kind: kind}
	}
	return err
}

// Limits bounds the listing window accepted from clients.
type Limits struct {
	MaxLimit int
}

// DefaultLimits mirrors repository.MaxLimit.
func DefaultLimits() Limits { return Limits{MaxLimit: repository.MaxLimit} }

// PlayerService defines player use cases.
type PlayerService interface {
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, f repository.PlayerFilter) ([]model.Player, error)
}

// PerformanceService defines scoring use cases.
type PerformanceService interface {
	ListPerformances(ctx context.Context, f repository.PerformanceFilter) ([]model.Performance, error)
}

// LeagueService defines league membership use cases.
type LeagueService interface {
	GetLeague(ctx context.Context, id int64) (model.League, error)
	ListLeagues(ctx context.Context, f repository.LeagueFilter) ([]model.League, error)
}

// TeamService defines team membership use cases.
type TeamService interface {
	ListTeams(ctx context.Context, f repository.TeamFilter) ([]model.Team, error)
}

// AnalyticsService computes aggregate views over the store.
type AnalyticsService interface {
	GetCounts(ctx context.Context) (model.Counts, error)
}
