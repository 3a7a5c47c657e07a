package service

import (
	"context"
	"fmt"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/rs/zerolog"
)

type analyticsService struct {
	leagues repository.LeagueRepository
	teams   repository.TeamRepository
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewAnalyticsService(leagues repository.LeagueRepository, teams repository.TeamRepository, players repository.PlayerRepository, logger zerolog.Logger) AnalyticsService {
	l := logger.With().Str("module", "service").Str("component", "analytics").Logger()
	return &analyticsService{leagues: leagues, teams: teams, players: players, log: l}
}

// GetCounts returns unfiltered cardinalities at call time.
func (s *analyticsService) GetCounts(ctx context.Context) (model.Counts, error) {
	var c model.Counts
	var err error
	if c.LeagueCount, err = s.leagues.Count(ctx); err != nil {
		return model.Counts{}, s.fail(err, "league")
	}
	if c.TeamCount, err = s.teams.Count(ctx); err != nil {
		return model.Counts{}, s.fail(err, "team")
	}
	if c.PlayerCount, err = s.players.Count(ctx); err != nil {
		return model.Counts{}, s.fail(err, "player")
	}
	return c, nil
}

func (s *analyticsService) fail(err error, kind string) error {
	s.log.Error().Err(err).Str("kind", kind).Msg("count failed")
	return fmt.Errorf("count %s: %w", kind, err)
}
