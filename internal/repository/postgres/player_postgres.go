package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

const playerColumns = `SELECT player_id, gsis_id, first_name, last_name, position, last_changed_date FROM player`

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

func scanPlayer(row pgx.CollectableRow) (model.Player, error) {
	var p model.Player
	err := row.Scan(&p.PlayerID, &p.GSISID, &p.FirstName, &p.LastName, &p.Position, &p.LastChangedDate.Time)
	return p, err
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, playerColumns+` WHERE player_id = $1`, id)
	if err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanPlayer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	out, err := attachPerformances(ctx, exec, []model.Player{p})
	if err != nil {
		return model.Player{}, err
	}
	return out[0], nil
}

func (r *playerRepository) List(ctx context.Context, f repository.PlayerFilter) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	var w repository.Where
	w.Since("last_changed_date", f.ChangedSince)
	repository.Eq(&w, "first_name", f.FirstName)
	repository.Eq(&w, "last_name", f.LastName)
	query := playerColumns + w.SQL() + w.Page("player_id", f.Page)

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, w.Args()...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	players, err := pgx.CollectRows(rows, scanPlayer)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return attachPerformances(ctx, exec, players)
}

func (r *playerRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "player")
}

// attachPerformances loads every performance of the given players with one query.
func attachPerformances(ctx context.Context, exec q, players []model.Player) ([]model.Player, error) {
	ids := make([]int64, 0, len(players))
	for i := range players {
		players[i].Performances = []model.Performance{}
		ids = append(ids, players[i].PlayerID)
	}
	if len(ids) == 0 {
		return players, nil
	}
	rows, err := exec.Query(ctx, performanceColumns+` WHERE player_id = ANY($1) ORDER BY performance_id`, ids)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	perfs, err := pgx.CollectRows(rows, scanPerformance)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	byPlayer := make(map[int64]int, len(players))
	for i, p := range players {
		byPlayer[p.PlayerID] = i
	}
	for _, perf := range perfs {
		i := byPlayer[perf.PlayerID]
		players[i].Performances = append(players[i].Performances, perf)
	}
	return players, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
