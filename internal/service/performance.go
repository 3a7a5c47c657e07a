package service

import (
	"context"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/rs/zerolog"
)

type performanceService struct {
	repo   repository.PerformanceRepository
	limits Limits
	log    zerolog.Logger
}

func NewPerformanceService(repo repository.PerformanceRepository, limits Limits, logger zerolog.Logger) PerformanceService {
	l := logger.With().Str("module", "service").Str("component", "performance").Logger()
	return &performanceService{repo: repo, limits: limits, log: l}
}

func (s *performanceService) ListPerformances(ctx context.Context, f repository.PerformanceFilter) ([]model.Performance, error) {
	if err := NewInvalidInputError(s.limits.validatePage(f.Page)); err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Int("skip", f.Skip).Int("limit", f.Limit).Msg("list performances failed")
		return nil, err
	}
	return nonNil(res), nil
}
