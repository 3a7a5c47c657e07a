package service

import (
	"context"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/rs/zerolog"
)

// teamService holds team use-case logic: validation + orchestration, no transport / SQL details.
type teamService struct {
	repo   repository.TeamRepository
	limits Limits
	log    zerolog.Logger
}

func NewTeamService(repo repository.TeamRepository, limits Limits, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{repo: repo, limits: limits, log: l}
}

func (s *teamService) ListTeams(ctx context.Context, f repository.TeamFilter) ([]model.Team, error) {
	// league_id is a plain equality filter; an unknown id just matches nothing.
	if err := NewInvalidInputError(s.limits.validatePage(f.Page)); err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Int("skip", f.Skip).Int("limit", f.Limit).Msg("list teams failed")
		return nil, err
	}
	return nonNil(res), nil
}
