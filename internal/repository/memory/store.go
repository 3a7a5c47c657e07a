// Package memory is a slice-backed record store. It runs the same Query Layer
// functions as the Postgres store and serves as the fixture for tests and local runs.
package memory

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

// Fixture is the full content of a store.
type Fixture struct {
	Players      []model.Player
	Performances []model.Performance
	Leagues      []model.League
	Teams        []model.Team
	Rosters      []model.Roster
}

// Store keeps each kind sorted by primary key. It is read-only after New.
type Store struct {
	players      []model.Player
	performances []model.Performance
	leagues      []model.League
	teams        []model.Team
	rosters      []model.Roster

	// PingErr is returned by Ping when set.
	PingErr error

	acquired atomic.Int64
	released atomic.Int64
}

// New copies the fixture and sorts every kind by primary key.
// Nested slices in the fixture are ignored; they are rebuilt from the flat rows.
func New(fx Fixture) *Store {
	s := &Store{
		players:      slices.Clone(fx.Players),
		performances: slices.Clone(fx.Performances),
		leagues:      slices.Clone(fx.Leagues),
		teams:        slices.Clone(fx.Teams),
		rosters:      slices.Clone(fx.Rosters),
	}
	slices.SortFunc(s.players, func(a, b model.Player) int { return cmp64(a.PlayerID, b.PlayerID) })
	slices.SortFunc(s.performances, func(a, b model.Performance) int { return cmp64(a.PerformanceID, b.PerformanceID) })
	slices.SortFunc(s.leagues, func(a, b model.League) int { return cmp64(a.LeagueID, b.LeagueID) })
	slices.SortFunc(s.teams, func(a, b model.Team) int { return cmp64(a.TeamID, b.TeamID) })
	slices.SortFunc(s.rosters, func(a, b model.Roster) int {
		if c := cmp64(a.TeamID, b.TeamID); c != 0 {
			return c
		}
		return cmp64(a.PlayerID, b.PlayerID)
	})
	return s
}

func cmp64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sessions reports how many sessions were opened and closed.
func (s *Store) Sessions() (acquired, released int64) {
	return s.acquired.Load(), s.released.Load()
}

// WithinSession counts the acquisition and always counts the release, panics included.
func (s *Store) WithinSession(ctx context.Context, fn repository.SessionFunc) error {
	s.acquired.Add(1)
	defer s.released.Add(1)
	return fn(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.PingErr
}

// Players returns the player repository view of the store.
func (s *Store) Players() repository.PlayerRepository { return playerRepo{s} }

// Performances returns the performance repository view of the store.
func (s *Store) Performances() repository.PerformanceRepository { return performanceRepo{s} }

// Leagues returns the league repository view of the store.
func (s *Store) Leagues() repository.LeagueRepository { return leagueRepo{s} }

// Teams returns the team repository view of the store.
func (s *Store) Teams() repository.TeamRepository { return teamRepo{s} }

type playerRepo struct{ s *Store }

func (r playerRepo) GetByID(ctx context.Context, id int64) (model.Player, error) {
	if err := ctx.Err(); err != nil {
		return model.Player{}, err
	}
	i, ok := slices.BinarySearchFunc(r.s.players, id, func(p model.Player, id int64) int { return cmp64(p.PlayerID, id) })
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return r.s.withPerformances(r.s.players[i]), nil
}

func (r playerRepo) List(ctx context.Context, f repository.PlayerFilter) ([]model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := repository.Select(r.s.players, f.Matches, f.Page)
	out := make([]model.Player, 0, len(page))
	for _, p := range page {
		out = append(out, r.s.withPerformances(p))
	}
	return out, nil
}

func (r playerRepo) Count(ctx context.Context) (int, error) {
	return len(r.s.players), ctx.Err()
}

func (s *Store) withPerformances(p model.Player) model.Player {
	p.Performances = []model.Performance{}
	for _, perf := range s.performances {
		if perf.PlayerID == p.PlayerID {
			p.Performances = append(p.Performances, perf)
		}
	}
	return p
}

type performanceRepo struct{ s *Store }

func (r performanceRepo) List(ctx context.Context, f repository.PerformanceFilter) ([]model.Performance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repository.Select(r.s.performances, f.Matches, f.Page), nil
}

type leagueRepo struct{ s *Store }

func (r leagueRepo) GetByID(ctx context.Context, id int64) (model.League, error) {
	if err := ctx.Err(); err != nil {
		return model.League{}, err
	}
	i, ok := slices.BinarySearchFunc(r.s.leagues, id, func(l model.League, id int64) int { return cmp64(l.LeagueID, id) })
	if !ok {
		return model.League{}, repository.ErrNotFound
	}
	return r.s.withTeams(r.s.leagues[i]), nil
}

func (r leagueRepo) List(ctx context.Context, f repository.LeagueFilter) ([]model.League, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := repository.Select(r.s.leagues, f.Matches, f.Page)
	out := make([]model.League, 0, len(page))
	for _, l := range page {
		out = append(out, r.s.withTeams(l))
	}
	return out, nil
}

func (r leagueRepo) Count(ctx context.Context) (int, error) {
	return len(r.s.leagues), ctx.Err()
}

func (s *Store) withTeams(l model.League) model.League {
	l.Teams = []model.LeagueTeam{}
	for _, t := range s.teams {
		if t.LeagueID == l.LeagueID {
			l.Teams = append(l.Teams, t.Bare())
		}
	}
	return l
}

type teamRepo struct{ s *Store }

func (r teamRepo) List(ctx context.Context, f repository.TeamFilter) ([]model.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := repository.Select(r.s.teams, f.Matches, f.Page)
	out := make([]model.Team, 0, len(page))
	for _, t := range page {
		out = append(out, r.s.withRoster(t))
	}
	return out, nil
}

func (r teamRepo) Count(ctx context.Context) (int, error) {
	return len(r.s.teams), ctx.Err()
}

func (s *Store) withRoster(t model.Team) model.Team {
	t.Players = []model.TeamPlayer{}
	for _, ro := range s.rosters {
		if ro.TeamID != t.TeamID {
			continue
		}
		i, ok := slices.BinarySearchFunc(s.players, ro.PlayerID, func(p model.Player, id int64) int { return cmp64(p.PlayerID, id) })
		if ok {
			t.Players = append(t.Players, s.players[i].Bare())
		}
	}
	return t
}

var (
	_ repository.SessionManager        = (*Store)(nil)
	_ repository.Pinger                = (*Store)(nil)
	_ repository.PlayerRepository      = playerRepo{}
	_ repository.PerformanceRepository = performanceRepo{}
	_ repository.LeagueRepository      = leagueRepo{}
	_ repository.TeamRepository        = teamRepo{}
)
