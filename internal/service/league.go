package service

import (
	"context"
	"errors"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/rs/zerolog"
)

type leagueService struct {
	repo   repository.LeagueRepository
	limits Limits
	log    zerolog.Logger
}

func NewLeagueService(repo repository.LeagueRepository, limits Limits, logger zerolog.Logger) LeagueService {
	l := logger.With().Str("module", "service").Str("component", "league").Logger()
	return &leagueService{repo: repo, limits: limits, log: l}
}

func (s *leagueService) GetLeague(ctx context.Context, id int64) (model.League, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("league_id", id).Msg("get league failed")
		}
		return model.League{}, notFoundAs("League", err)
	}
	return l, nil
}

func (s *leagueService) ListLeagues(ctx context.Context, f repository.LeagueFilter) ([]model.League, error) {
	if err := NewInvalidInputError(s.limits.validatePage(f.Page)); err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Int("skip", f.Skip).Int("limit", f.Limit).Msg("list leagues failed")
		return nil, err
	}
	return nonNil(res), nil
}
