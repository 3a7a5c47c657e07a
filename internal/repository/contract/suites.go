// Package contract holds store-agnostic test suites. Every record store runs them
// against the same fixture so the Query Layer behaves identically everywhere.
package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/repository/memory"
)

// Repos is the read surface a store exposes to the suites.
type Repos struct {
	Players      repository.PlayerRepository
	Performances repository.PerformanceRepository
	Leagues      repository.LeagueRepository
	Teams        repository.TeamRepository
	Sessions     repository.SessionManager
	Pinger       repository.Pinger
}

// Factory seeds a fresh store with fx and returns its repositories plus cleanup.
type Factory func(t *testing.T, fx memory.Fixture) (Repos, func())

func ptr[T any](v T) *T { return &v }

// SeedFixture is a small league universe with two players named Tom.
func SeedFixture() memory.Fixture {
	d := model.MustDate
	return memory.Fixture{
		Players: []model.Player{
			{PlayerID: 1001, GSISID: "00-0019596", FirstName: "Tom", LastName: "Brady", Position: "QB", LastChangedDate: d("2024-04-01")},
			{PlayerID: 1002, GSISID: "00-0033873", FirstName: "Patrick", LastName: "Mahomes", Position: "QB", LastChangedDate: d("2024-04-10")},
			{PlayerID: 1003, GSISID: "00-0036900", FirstName: "Tom", LastName: "Kennedy", Position: "WR", LastChangedDate: d("2024-04-15")},
			{PlayerID: 1004, GSISID: "00-0036322", FirstName: "Justin", LastName: "Jefferson", Position: "WR", LastChangedDate: d("2024-04-20")},
			{PlayerID: 1005, GSISID: "00-0037744", FirstName: "Trey", LastName: "McBride", Position: "TE", LastChangedDate: d("2024-04-20")},
		},
		Performances: []model.Performance{
			{PerformanceID: 1, PlayerID: 1001, WeekNumber: "202301", FantasyPoints: 20.5, LastChangedDate: d("2024-04-01")},
			{PerformanceID: 2, PlayerID: 1001, WeekNumber: "202302", FantasyPoints: 15.0, LastChangedDate: d("2024-04-15")},
			{PerformanceID: 3, PlayerID: 1002, WeekNumber: "202301", FantasyPoints: 25.1, LastChangedDate: d("2024-04-20")},
			{PerformanceID: 4, PlayerID: 1003, WeekNumber: "202301", FantasyPoints: 8.4, LastChangedDate: d("2024-04-21")},
		},
		Leagues: []model.League{
			{LeagueID: 5001, LeagueName: "Pigskin Prodigal Fantasy League", ScoringType: "PPR", LastChangedDate: d("2024-04-01")},
			{LeagueID: 5002, LeagueName: "Recurring Champions League", ScoringType: "Half-PPR", LastChangedDate: d("2024-04-16")},
		},
		Teams: []model.Team{
			{LeagueID: 5001, TeamID: 101, TeamName: "Club Gridiron", LastChangedDate: d("2024-04-01")},
			{LeagueID: 5001, TeamID: 102, TeamName: "Herd of Hoofs", LastChangedDate: d("2024-04-16")},
			{LeagueID: 5002, TeamID: 103, TeamName: "The Injury Inmates", LastChangedDate: d("2024-04-18")},
		},
		Rosters: []model.Roster{
			{TeamID: 101, PlayerID: 1001, LastChangedDate: d("2024-04-01")},
			{TeamID: 101, PlayerID: 1003, LastChangedDate: d("2024-04-01")},
			{TeamID: 102, PlayerID: 1002, LastChangedDate: d("2024-04-16")},
			{TeamID: 103, PlayerID: 1004, LastChangedDate: d("2024-04-18")},
		},
	}
}

func playerIDs(ps []model.Player) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.PlayerID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RunPlayerRepositoryContract checks pagination, filters and lookups on players.
func RunPlayerRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("pagination_window", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		all := []int64{1001, 1002, 1003, 1004, 1005}
		for skip := 0; skip <= len(all)+1; skip++ {
			for limit := 0; limit <= len(all)+1; limit++ {
				got, err := repos.Players.List(ctx, repository.PlayerFilter{Page: repository.Page{Skip: skip, Limit: limit}})
				if err != nil {
					t.Fatalf("list skip=%d limit=%d: %v", skip, limit, err)
				}
				lo, hi := repository.Window(len(all), repository.Page{Skip: skip, Limit: limit})
				if !equalIDs(playerIDs(got), all[lo:hi]) {
					t.Fatalf("skip=%d limit=%d: got %v want %v", skip, limit, playerIDs(got), all[lo:hi])
				}
			}
		}
	})

	t.Run("first_name_limit_one_returns_first_by_id", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		got, err := repos.Players.List(ctx, repository.PlayerFilter{
			Page:      repository.Page{Skip: 0, Limit: 1},
			FirstName: ptr("Tom"),
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].PlayerID != 1001 {
			t.Fatalf("expected player 1001, got %v", playerIDs(got))
		}
	})

	t.Run("and_of_filters", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		got, err := repos.Players.List(ctx, repository.PlayerFilter{
			Page:      repository.DefaultPage(),
			FirstName: ptr("Tom"),
			LastName:  ptr("Kennedy"),
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if !equalIDs(playerIDs(got), []int64{1003}) {
			t.Fatalf("unexpected players: %v", playerIDs(got))
		}
	})

	t.Run("absent_filter_is_noop", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		got, err := repos.Players.List(ctx, repository.PlayerFilter{Page: repository.DefaultPage()})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("expected every player, got %v", playerIDs(got))
		}
		empty, err := repos.Players.List(ctx, repository.PlayerFilter{Page: repository.DefaultPage(), FirstName: ptr("")})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(empty) != 0 {
			t.Fatalf("explicit empty name must filter, got %v", playerIDs(empty))
		}
	})

	t.Run("min_last_changed_date_boundary_included", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		d := model.MustDate("2024-04-15")
		got, err := repos.Players.List(ctx, repository.PlayerFilter{
			Page:         repository.DefaultPage(),
			ChangedSince: repository.ChangedSince{MinLastChanged: &d},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if !equalIDs(playerIDs(got), []int64{1003, 1004, 1005}) {
			t.Fatalf("unexpected players: %v", playerIDs(got))
		}
	})

	t.Run("no_match_is_empty_not_error", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		got, err := repos.Players.List(ctx, repository.PlayerFilter{Page: repository.DefaultPage(), LastName: ptr("Nobody")})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no players, got %v", playerIDs(got))
		}
	})

	t.Run("get_with_performances", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		p, err := repos.Players.GetByID(ctx, 1001)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if p.LastName != "Brady" || len(p.Performances) != 2 {
			t.Fatalf("unexpected player: %+v", p)
		}
		if p.Performances[0].PerformanceID != 1 || p.Performances[1].PerformanceID != 2 {
			t.Fatalf("performances out of order: %+v", p.Performances)
		}
		if !p.LastChangedDate.Equal(model.MustDate("2024-04-01").Time) {
			t.Fatalf("unexpected date: %s", p.LastChangedDate)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		_, err := repos.Players.GetByID(ctx, 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("count", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		n, err := repos.Players.Count(ctx)
		if err != nil || n != 5 {
			t.Fatalf("count = %d, %v", n, err)
		}
	})
}

// RunPerformanceRepositoryContract checks performance listing.
func RunPerformanceRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("min_date_and_window", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		d := model.MustDate("2024-04-15")
		got, err := repos.Performances.List(ctx, repository.PerformanceFilter{
			Page:         repository.Page{Skip: 1, Limit: 5},
			ChangedSince: repository.ChangedSince{MinLastChanged: &d},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0].PerformanceID != 3 || got[1].PerformanceID != 4 {
			t.Fatalf("unexpected performances: %+v", got)
		}
		if got[0].FantasyPoints != 25.1 || got[0].WeekNumber != "202301" {
			t.Fatalf("unexpected fields: %+v", got[0])
		}
	})
}

// RunLeagueRepositoryContract checks league listing, nesting and lookups.
func RunLeagueRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("name_filter_with_teams", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		got, err := repos.Leagues.List(ctx, repository.LeagueFilter{
			Page:       repository.DefaultPage(),
			LeagueName: ptr("Pigskin Prodigal Fantasy League"),
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].LeagueID != 5001 || len(got[0].Teams) != 2 {
			t.Fatalf("unexpected leagues: %+v", got)
		}
		if got[0].Teams[0].TeamID != 101 || got[0].Teams[1].TeamID != 102 {
			t.Fatalf("teams out of order: %+v", got[0].Teams)
		}
	})

	t.Run("get_and_not_found", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		l, err := repos.Leagues.GetByID(ctx, 5002)
		if err != nil || l.ScoringType != "Half-PPR" || len(l.Teams) != 1 {
			t.Fatalf("get: %+v, %v", l, err)
		}
		if _, err := repos.Leagues.GetByID(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("count", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		n, err := repos.Leagues.Count(ctx)
		if err != nil || n != 2 {
			t.Fatalf("count = %d, %v", n, err)
		}
	})
}

// RunTeamRepositoryContract checks team listing and rosters.
func RunTeamRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("league_filter_with_rosters", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		got, err := repos.Teams.List(ctx, repository.TeamFilter{
			Page:     repository.DefaultPage(),
			LeagueID: ptr(int64(5001)),
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0].TeamID != 101 || got[1].TeamID != 102 {
			t.Fatalf("unexpected teams: %+v", got)
		}
		if len(got[0].Players) != 2 || got[0].Players[0].PlayerID != 1001 || got[0].Players[1].PlayerID != 1003 {
			t.Fatalf("unexpected roster: %+v", got[0].Players)
		}
	})

	t.Run("name_and_date", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		d := model.MustDate("2024-04-17")
		got, err := repos.Teams.List(ctx, repository.TeamFilter{
			Page:         repository.DefaultPage(),
			ChangedSince: repository.ChangedSince{MinLastChanged: &d},
			TeamName:     ptr("Herd of Hoofs"),
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no teams, got %+v", got)
		}
	})

	t.Run("count", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		n, err := repos.Teams.Count(ctx)
		if err != nil || n != 3 {
			t.Fatalf("count = %d, %v", n, err)
		}
	})
}

// RunSessionContract checks that repositories work inside a session.
func RunSessionContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("reads_inside_session", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		var players, leagues int
		err := repos.Sessions.WithinSession(context.Background(), func(ctx context.Context) error {
			var err error
			if players, err = repos.Players.Count(ctx); err != nil {
				return err
			}
			leagues, err = repos.Leagues.Count(ctx)
			return err
		})
		if err != nil || players != 5 || leagues != 2 {
			t.Fatalf("session read: players=%d leagues=%d err=%v", players, leagues, err)
		}
	})

	t.Run("fn_error_propagates", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		boom := errors.New("boom")
		err := repos.Sessions.WithinSession(context.Background(), func(context.Context) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		repos, cleanup := makeRepos(t, SeedFixture())
		t.Cleanup(cleanup)
		if err := repos.Pinger.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}

// RunAll runs every suite against one store.
func RunAll(t *testing.T, makeRepos Factory) {
	t.Run("players", func(t *testing.T) { RunPlayerRepositoryContract(t, makeRepos) })
	t.Run("performances", func(t *testing.T) { RunPerformanceRepositoryContract(t, makeRepos) })
	t.Run("leagues", func(t *testing.T) { RunLeagueRepositoryContract(t, makeRepos) })
	t.Run("teams", func(t *testing.T) { RunTeamRepositoryContract(t, makeRepos) })
	t.Run("sessions", func(t *testing.T) { RunSessionContract(t, makeRepos) })
}
