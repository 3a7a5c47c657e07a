package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/swc-fantasy-api/internal/model"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

const teamColumns = `SELECT league_id, team_id, team_name, last_changed_date FROM team`

type teamRepository struct{ pool *pgxpool.Pool }

func NewTeamRepository(pool *pgxpool.Pool) repository.TeamRepository {
	return &teamRepository{pool: pool}
}

func scanTeam(row pgx.CollectableRow) (model.Team, error) {
	var t model.Team
	err := row.Scan(&t.LeagueID, &t.TeamID, &t.TeamName, &t.LastChangedDate.Time)
	return t, err
}

func (r *teamRepository) List(ctx context.Context, f repository.TeamFilter) ([]model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	var w repository.Where
	w.Since("last_changed_date", f.ChangedSince)
	repository.Eq(&w, "team_name", f.TeamName)
	repository.Eq(&w, "league_id", f.LeagueID)
	query := teamColumns + w.SQL() + w.Page("team_id", f.Page)

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, w.Args()...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	teams, err := pgx.CollectRows(rows, scanTeam)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return attachRosters(ctx, exec, teams)
}

func (r *teamRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "team")
}

// attachRosters resolves team_player for the page of teams in a single join.
func attachRosters(ctx context.Context, exec q, teams []model.Team) ([]model.Team, error) {
	ids := make([]int64, 0, len(teams))
	byTeam := make(map[int64]int, len(teams))
	for i := range teams {
		teams[i].Players = []model.TeamPlayer{}
		ids = append(ids, teams[i].TeamID)
		byTeam[teams[i].TeamID] = i
	}
	if len(ids) == 0 {
		return teams, nil
	}
	rows, err := exec.Query(ctx,
		`SELECT tp.team_id, p.player_id, p.gsis_id, p.first_name, p.last_name, p.position, p.last_changed_date
		 FROM team_player tp
		 JOIN player p ON p.player_id = tp.player_id
		 WHERE tp.team_id = ANY($1)
		 ORDER BY tp.team_id, p.player_id`, ids)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var teamID int64
		var p model.TeamPlayer
		if err := rows.Scan(&teamID, &p.PlayerID, &p.GSISID, &p.FirstName, &p.LastName, &p.Position, &p.LastChangedDate.Time); err != nil {
			return nil, repository.MapPgError(err)
		}
		i := byTeam[teamID]
		teams[i].Players = append(teams[i].Players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return teams, nil
}

var _ repository.TeamRepository = (*teamRepository)(nil)
