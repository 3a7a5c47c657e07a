package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
)

type fakeLeagueRepo struct {
	leagues  map[int64]model.League
	countErr error
}

func (f *fakeLeagueRepo) GetByID(_ context.Context, id int64) (model.League, error) {
	l, ok := f.leagues[id]
	if !ok {
		return model.League{}, repository.ErrNotFound
	}
	return l, nil
}

func (f *fakeLeagueRepo) List(context.Context, repository.LeagueFilter) ([]model.League, error) {
	return nil, nil
}

func (f *fakeLeagueRepo) Count(context.Context) (int, error) { return len(f.leagues), f.countErr }

type fakeTeamRepo struct {
	teams    []model.Team
	lastList repository.TeamFilter
}

func (f *fakeTeamRepo) List(_ context.Context, flt repository.TeamFilter) ([]model.Team, error) {
	f.lastList = flt
	return f.teams, nil
}

func (f *fakeTeamRepo) Count(context.Context) (int, error) { return len(f.teams), nil }

var (
	_ repository.LeagueRepository = (*fakeLeagueRepo)(nil)
	_ repository.TeamRepository   = (*fakeTeamRepo)(nil)
)

func TestLeagueService_GetLeague(t *testing.T) {
	repo := &fakeLeagueRepo{leagues: map[int64]model.League{5001: {LeagueID: 5001, ScoringType: "PPR"}}}
	svc := service.NewLeagueService(repo, service.DefaultLimits(), quietLogger())

	l, err := svc.GetLeague(context.Background(), 5001)
	if err != nil || l.ScoringType != "PPR" {
		t.Fatalf("unexpected result: %+v, %v", l, err)
	}

	_, err = svc.GetLeague(context.Background(), 1)
	var nf *service.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "League" {
		t.Fatalf("expected League not found, got %v", err)
	}

	_, err = svc.GetLeague(context.Background(), -3)
	if !errors.As(err, &nf) || nf.Kind != "League" {
		t.Fatalf("expected League not found for a negative id, got %v", err)
	}
}

func TestLeagueService_ListLeagues_EmptyIsNotNil(t *testing.T) {
	svc := service.NewLeagueService(&fakeLeagueRepo{}, service.DefaultLimits(), quietLogger())
	res, err := svc.ListLeagues(context.Background(), repository.LeagueFilter{Page: repository.DefaultPage()})
	if err != nil || res == nil || len(res) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v, %v", res, err)
	}
}

func TestTeamService_ListTeams(t *testing.T) {
	repo := &fakeTeamRepo{teams: []model.Team{{TeamID: 101, LeagueID: 5001}}}
	svc := service.NewTeamService(repo, service.DefaultLimits(), quietLogger())

	leagueID := int64(5001)
	res, err := svc.ListTeams(context.Background(), repository.TeamFilter{Page: repository.DefaultPage(), LeagueID: &leagueID})
	if err != nil || len(res) != 1 {
		t.Fatalf("unexpected result: %v, %v", res, err)
	}
	if repo.lastList.LeagueID == nil || *repo.lastList.LeagueID != 5001 {
		t.Fatalf("league filter not passed through")
	}

	zero := int64(0)
	_, err = svc.ListTeams(context.Background(), repository.TeamFilter{Page: repository.DefaultPage(), LeagueID: &zero})
	if err != nil {
		t.Fatalf("league_id=0 is an ordinary filter, got %v", err)
	}
	if repo.lastList.LeagueID == nil || *repo.lastList.LeagueID != 0 {
		t.Fatalf("league_id=0 not passed through")
	}

	_, err = svc.ListTeams(context.Background(), repository.TeamFilter{Page: repository.Page{Skip: -1, Limit: 10}, LeagueID: &zero})
	if !hasField(err, "skip") || hasField(err, "league_id") {
		t.Fatalf("expected only skip reported, got %v", service.FieldErrors(err))
	}
}

func TestAnalyticsService_GetCounts(t *testing.T) {
	leagues := &fakeLeagueRepo{leagues: map[int64]model.League{1: {}, 2: {}}}
	teams := &fakeTeamRepo{teams: []model.Team{{}, {}, {}}}
	players := newFakePlayerRepo(model.Player{PlayerID: 1}, model.Player{PlayerID: 2}, model.Player{PlayerID: 3}, model.Player{PlayerID: 4})
	svc := service.NewAnalyticsService(leagues, teams, players, quietLogger())

	c, err := svc.GetCounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (model.Counts{LeagueCount: 2, TeamCount: 3, PlayerCount: 4}) {
		t.Fatalf("unexpected counts: %+v", c)
	}

	leagues.countErr = repository.ErrUnavailable
	_, err = svc.GetCounts(context.Background())
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	if service.NewInvalidInputError(nil) != nil {
		t.Fatalf("no field errors must mean no error")
	}
	err := service.NewInvalidInputError([]service.FieldError{{Field: "limit", Message: "bad"}})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("aggregated error must unwrap to ErrInvalidInput")
	}
	if fe := service.FieldErrors(err); len(fe) != 1 || fe[0].Field != "limit" {
		t.Fatalf("unexpected field errors: %+v", fe)
	}
	if service.FieldErrors(errors.New("other")) != nil {
		t.Fatalf("unrelated errors carry no field errors")
	}
}
