package swcclient

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// BulkKind names one full-snapshot file.
type BulkKind string

const (
	BulkPlayers      BulkKind = "players"
	BulkLeagues      BulkKind = "leagues"
	BulkPerformances BulkKind = "performances"
	BulkTeams        BulkKind = "teams"
	BulkTeamPlayers  BulkKind = "team_players"
)

var bulkFileNames = map[BulkKind]string{
	BulkPlayers:      "player_data",
	BulkLeagues:      "league_data",
	BulkPerformances: "performance_data",
	BulkTeams:        "team_data",
	BulkTeamPlayers:  "team_player_data",
}

// BulkFileURL is where kind is fetched from in the configured format.
func (c *Client) BulkFileURL(kind BulkKind) (string, error) {
	name, ok := bulkFileNames[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown bulk file kind %q", ErrValidation, kind)
	}
	return c.cfg.BulkFileBaseURL + "/" + name + "." + string(c.cfg.BulkFileFormat), nil
}

// BulkFile downloads the raw snapshot of kind under the retry policy.
func (c *Client) BulkFile(ctx context.Context, kind BulkKind) ([]byte, error) {
	u, err := c.BulkFileURL(kind)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, u)
}

func (c *Client) BulkPlayers(ctx context.Context) ([]Player, error) {
	return bulkRows(ctx, c, BulkPlayers, func(r row) (Player, error) {
		var p Player
		p.PlayerID = r.int64("player_id")
		p.GSISID = r.str("gsis_id")
		p.FirstName = r.str("first_name")
		p.LastName = r.str("last_name")
		p.Position = r.str("position")
		p.LastChangedDate = r.date("last_changed_date")
		return p, r.err
	})
}

func (c *Client) BulkLeagues(ctx context.Context) ([]League, error) {
	return bulkRows(ctx, c, BulkLeagues, func(r row) (League, error) {
		var l League
		l.LeagueID = r.int64("league_id")
		l.LeagueName = r.str("league_name")
		l.ScoringType = r.str("scoring_type")
		l.LastChangedDate = r.date("last_changed_date")
		return l, r.err
	})
}

func (c *Client) BulkPerformances(ctx context.Context) ([]Performance, error) {
	return bulkRows(ctx, c, BulkPerformances, func(r row) (Performance, error) {
		var p Performance
		p.PerformanceID = r.int64("performance_id")
		p.PlayerID = r.int64("player_id")
		p.WeekNumber = r.str("week_number")
		p.FantasyPoints = r.float64("fantasy_points")
		p.LastChangedDate = r.date("last_changed_date")
		return p, r.err
	})
}

func (c *Client) BulkTeams(ctx context.Context) ([]Team, error) {
	return bulkRows(ctx, c, BulkTeams, func(r row) (Team, error) {
		var t Team
		t.LeagueID = r.int64("league_id")
		t.TeamID = r.int64("team_id")
		t.TeamName = r.str("team_name")
		t.LastChangedDate = r.date("last_changed_date")
		return t, r.err
	})
}

func (c *Client) BulkTeamPlayers(ctx context.Context) ([]TeamPlayer, error) {
	return bulkRows(ctx, c, BulkTeamPlayers, func(r row) (TeamPlayer, error) {
		var tp TeamPlayer
		tp.TeamID = r.int64("team_id")
		tp.PlayerID = r.int64("player_id")
		tp.LastChangedDate = r.date("last_changed_date")
		return tp, r.err
	})
}

// bulkRows downloads kind, splits it into rows and maps each row through conv.
func bulkRows[T any](ctx context.Context, c *Client, kind BulkKind, conv func(row) (T, error)) ([]T, error) {
	raw, err := c.BulkFile(ctx, kind)
	if err != nil {
		return nil, err
	}
	var t *table
	switch c.cfg.BulkFileFormat {
	case BulkParquet:
		t, err = readParquet(ctx, raw)
	default:
		t, err = readCSV(raw)
	}
	if err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("%s: %w", kind, err)}
	}

	out := make([]T, 0, len(t.rows))
	for i, cells := range t.rows {
		v, err := conv(row{cols: t.cols, cells: cells})
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", kind, i+1, err)
		}
		if err := check(c.validate, v); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", kind, i+1, err)
		}
		out = append(out, v)
	}
	c.log.Debug().Str("kind", string(kind)).Int("rows", len(out)).Msg("bulk file parsed")
	return out, nil
}

// table is a header plus string cells, the common shape of both formats.
type table struct {
	cols map[string]int
	rows [][]string
}

func newTable(header []string) *table {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return &table{cols: cols}
}

func readCSV(raw []byte) (*table, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv file")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	t := newTable(header)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		t.rows = append(t.rows, rec)
	}
}

func readParquet(ctx context.Context, raw []byte) (*table, error) {
	mem := memory.NewGoAllocator()
	tbl, err := pqarrow.ReadTable(ctx, bytes.NewReader(raw), parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	header := make([]string, tbl.NumCols())
	for i := range header {
		header[i] = schema.Field(i).Name
	}
	t := newTable(header)
	t.rows = make([][]string, tbl.NumRows())
	for i := range t.rows {
		t.rows[i] = make([]string, len(header))
	}
	for ci := 0; ci < int(tbl.NumCols()); ci++ {
		ri := 0
		for _, chunk := range tbl.Column(ci).Data().Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				if !chunk.IsNull(j) {
					t.rows[ri][ci] = chunk.ValueStr(j)
				}
				ri++
			}
		}
	}
	return t, nil
}

// row reads typed cells by column name and keeps the first failure.
type row struct {
	cols  map[string]int
	cells []string
	err   error
}

func (r *row) cell(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r *row) fail(col string, err error) {
	if r.err == nil {
		r.err = &ValidationError{Field: col, Err: err}
	}
}

func (r *row) str(col string) string { return r.cell(col) }

func (r *row) int64(col string) int64 {
	s := r.cell(col)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		r.fail(col, err)
	}
	return n
}

func (r *row) float64(col string) float64 {
	s := r.cell(col)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(col, err)
	}
	return f
}

func (r *row) date(col string) Date {
	s := r.cell(col)
	if s == "" {
		return Date{}
	}
	d, err := ParseDate(s)
	if err != nil {
		r.fail(col, err)
	}
	return d
}
