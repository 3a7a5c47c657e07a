package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/rs/zerolog"
)

type playerService struct {
	players repository.PlayerRepository
	limits  Limits
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, limits Limits, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, limits: limits, log: l}
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("player_id", id).Msg("get player failed")
		}
		return model.Player{}, notFoundAs("Player", err)
	}
	return p, nil
}

func (s *playerService) ListPlayers(ctx context.Context, f repository.PlayerFilter) ([]model.Player, error) {
	start := time.Now()
	if err := NewInvalidInputError(s.limits.validatePage(f.Page)); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("player filter rejected")
		return nil, err
	}
	res, err := s.players.List(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Int("skip", f.Skip).Int("limit", f.Limit).Msg("list players failed")
		return nil, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("count", len(res)).Msg("players listed")
	return nonNil(res), nil
}

// nonNil keeps empty results rendering as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
