package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

const performanceColumns = `SELECT performance_id, player_id, week_number, fantasy_points, last_changed_date FROM performance`

type performanceRepository struct{ pool *pgxpool.Pool }

func NewPerformanceRepository(pool *pgxpool.Pool) repository.PerformanceRepository {
	return &performanceRepository{pool: pool}
}

func scanPerformance(row pgx.CollectableRow) (model.Performance, error) {
	var p model.Performance
	err := row.Scan(&p.PerformanceID, &p.PlayerID, &p.WeekNumber, &p.FantasyPoints, &p.LastChangedDate.Time)
	return p, err
}

func (r *performanceRepository) List(ctx context.Context, f repository.PerformanceFilter) ([]model.Performance, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	var w repository.Where
	w.Since("last_changed_date", f.ChangedSince)
	query := performanceColumns + w.SQL() + w.Page("performance_id", f.Page)

	rows, err := getQ(ctx, r.pool).Query(ctx, query, w.Args()...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	out, err := pgx.CollectRows(rows, scanPerformance)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.PerformanceRepository = (*performanceRepository)(nil)
