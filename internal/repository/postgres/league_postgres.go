package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

const leagueColumns = `SELECT league_id, league_name, scoring_type, last_changed_date FROM league`

type leagueRepository struct{ pool *pgxpool.Pool }

func NewLeagueRepository(pool *pgxpool.Pool) repository.LeagueRepository {
	return &leagueRepository{pool: pool}
}

func scanLeague(row pgx.CollectableRow) (model.League, error) {
	var l model.League
	err := row.Scan(&l.LeagueID, &l.LeagueName, &l.ScoringType, &l.LastChangedDate.Time)
	return l, err
}

func (r *leagueRepository) GetByID(ctx context.Context, id int64) (model.League, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.League{}, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, leagueColumns+` WHERE league_id = $1`, id)
	if err != nil {
		return model.League{}, repository.MapPgError(err)
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLeague)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.League{}, repository.ErrNotFound
		}
		return model.League{}, repository.MapPgError(err)
	}
	out, err := attachTeams(ctx, exec, []model.League{l})
	if err != nil {
		return model.League{}, err
	}
	return out[0], nil
}

func (r *leagueRepository) List(ctx context.Context, f repository.LeagueFilter) ([]model.League, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	var w repository.Where
	w.Since("last_changed_date", f.ChangedSince)
	repository.Eq(&w, "league_name", f.LeagueName)
	query := leagueColumns + w.SQL() + w.Page("league_id", f.Page)

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, w.Args()...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	leagues, err := pgx.CollectRows(rows, scanLeague)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return attachTeams(ctx, exec, leagues)
}

func (r *leagueRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "league")
}

// attachTeams loads the teams of every given league with one query.
func attachTeams(ctx context.Context, exec q, leagues []model.League) ([]model.League, error) {
	ids := make([]int64, 0, len(leagues))
	byLeague := make(map[int64]int, len(leagues))
	for i := range leagues {
		leagues[i].Teams = []model.LeagueTeam{}
		ids = append(ids, leagues[i].LeagueID)
		byLeague[leagues[i].LeagueID] = i
	}
	if len(ids) == 0 {
		return leagues, nil
	}
	rows, err := exec.Query(ctx, teamColumns+` WHERE league_id = ANY($1) ORDER BY team_id`, ids)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	teams, err := pgx.CollectRows(rows, scanTeam)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	for _, t := range teams {
		i := byLeague[t.LeagueID]
		leagues[i].Teams = append(leagues[i].Teams, t.Bare())
	}
	return leagues, nil
}

var _ repository.LeagueRepository = (*leagueRepository)(nil)
