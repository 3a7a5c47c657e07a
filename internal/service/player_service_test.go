package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
)

type fakePlayerRepo struct {
	players  map[int64]model.Player
	listErr  error
	lastList repository.PlayerFilter
	calls    int
}

func newFakePlayerRepo(ps ...model.Player) *fakePlayerRepo {
	f := &fakePlayerRepo{players: map[int64]model.Player{}}
	for _, p := range ps {
		f.players[p.PlayerID] = p
	}
	return f
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int64) (model.Player, error) {
	f.calls++
	p, ok := f.players[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePlayerRepo) List(_ context.Context, flt repository.PlayerFilter) ([]model.Player, error) {
	f.calls++
	f.lastList = flt
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func (f *fakePlayerRepo) Count(context.Context) (int, error) { return len(f.players), nil }

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

func quietLogger() zerolog.Logger { return zerolog.New(io.Discard) }

func serviceErrIsInvalid(err error) bool { return errors.Is(err, service.ErrInvalidInput) }

func hasField(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestPlayerService_GetPlayer(t *testing.T) {
	repo := newFakePlayerRepo(model.Player{PlayerID: 1001, FirstName: "Tom"})
	svc := service.NewPlayerService(repo, service.DefaultLimits(), quietLogger())

	p, err := svc.GetPlayer(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FirstName != "Tom" {
		t.Fatalf("unexpected player: %+v", p)
	}

	_, err = svc.GetPlayer(context.Background(), 42)
	var nf *service.NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "Player not found" {
		t.Fatalf("expected Player not found, got %v", err)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("not found must unwrap to repository.ErrNotFound")
	}
}

func TestPlayerService_GetPlayer_NonPositiveIDIsNotFound(t *testing.T) {
	repo := newFakePlayerRepo(model.Player{PlayerID: 1001})
	svc := service.NewPlayerService(repo, service.DefaultLimits(), quietLogger())

	for _, id := range []int64{0, -7} {
		_, err := svc.GetPlayer(context.Background(), id)
		var nf *service.NotFoundError
		if !errors.As(err, &nf) || serviceErrIsInvalid(err) {
			t.Fatalf("id %d: expected Player not found, got %v", id, err)
		}
	}
	if repo.calls != 2 {
		t.Fatalf("expected every lookup to reach the repository, got %d calls", repo.calls)
	}
}

func TestPlayerService_ListPlayers_Window(t *testing.T) {
	cases := []struct {
		name    string
		page    repository.Page
		wantErr bool
		field   string
	}{
		{"defaults", repository.DefaultPage(), false, ""},
		{"zero limit", repository.Page{Limit: 0}, false, ""},
		{"max limit", repository.Page{Limit: 250}, false, ""},
		{"above max", repository.Page{Limit: 251}, true, "limit"},
		{"negative limit", repository.Page{Limit: -1}, true, "limit"},
		{"negative skip", repository.Page{Skip: -5, Limit: 10}, true, "skip"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakePlayerRepo()
			svc := service.NewPlayerService(repo, service.Limits{MaxLimit: 250}, quietLogger())
			res, err := svc.ListPlayers(context.Background(), repository.PlayerFilter{Page: tc.page})
			if tc.wantErr {
				if !serviceErrIsInvalid(err) || !hasField(err, tc.field) {
					t.Fatalf("expected invalid %s, got %v", tc.field, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res == nil {
				t.Fatalf("empty result must be a non-nil slice")
			}
			if repo.lastList.Page != tc.page {
				t.Fatalf("page not passed through: %+v", repo.lastList.Page)
			}
		})
	}
}

func TestPlayerService_ListPlayers_StoreError(t *testing.T) {
	repo := newFakePlayerRepo()
	repo.listErr = repository.ErrUnavailable
	svc := service.NewPlayerService(repo, service.DefaultLimits(), quietLogger())

	_, err := svc.ListPlayers(context.Background(), repository.PlayerFilter{Page: repository.DefaultPage()})
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
