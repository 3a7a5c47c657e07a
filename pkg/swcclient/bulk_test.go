package swcclient_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/swc-fantasy-api/pkg/swcclient"
)

func bulkServer(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func bulkClient(t *testing.T, srv *httptest.Server, format swcclient.BulkFormat) *swcclient.Client {
	t.Helper()
	cfg := fastConfig(srv.URL)
	cfg.BulkFileBaseURL = srv.URL + "/bulk"
	cfg.BulkFileFormat = format
	return newClient(t, cfg)
}

func TestBulkFileURL(t *testing.T) {
	c := newClient(t, swcclient.Config{BaseURL: "http://localhost:8080", BulkFileFormat: swcclient.BulkParquet})
	u, err := c.BulkFileURL(swcclient.BulkTeamPlayers)
	require.NoError(t, err)
	assert.Equal(t, swcclient.DefaultBulkFileBaseURL+"/team_player_data.parquet", u)

	_, err = c.BulkFileURL("games")
	assert.ErrorIs(t, err, swcclient.ErrValidation)
}

func TestBulkCSV(t *testing.T) {
	srv := bulkServer(t, map[string][]byte{
		"/bulk/player_data.csv": []byte("player_id,gsis_id,first_name,last_name,position,last_changed_date\n" +
			"1001,00-0019596,Tom,Brady,QB,2024-04-01\n" +
			"1003,00-0036900,Tom,Kennedy,WR,2024-04-15\n"),
		"/bulk/performance_data.csv": []byte("performance_id,player_id,week_number,fantasy_points,last_changed_date\n" +
			"1,1001,202301,20.5,2024-04-01\n"),
		"/bulk/league_data.csv": []byte("league_id,league_name,scoring_type,last_changed_date\n" +
			"5001,\"Pigskin Prodigal Fantasy League\",PPR,2024-04-01\n"),
		"/bulk/team_data.csv": []byte("league_id,team_id,team_name,last_changed_date\n" +
			"5001,101,Club Gridiron,2024-04-01\n"),
		"/bulk/team_player_data.csv": []byte("team_id,player_id,last_changed_date\n" +
			"101,1001,2024-04-01\n101,1003,2024-04-01\n"),
	})
	c := bulkClient(t, srv, swcclient.BulkCSV)
	ctx := context.Background()

	players, err := c.BulkPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Kennedy", players[1].LastName)
	assert.Equal(t, swcclient.NewDate(2024, time.April, 15).String(), players[1].LastChangedDate.String())

	perfs, err := c.BulkPerformances(ctx)
	require.NoError(t, err)
	require.Len(t, perfs, 1)
	assert.InDelta(t, 20.5, perfs[0].FantasyPoints, 1e-9)

	leagues, err := c.BulkLeagues(ctx)
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	assert.Equal(t, "Pigskin Prodigal Fantasy League", leagues[0].LeagueName)

	teams, err := c.BulkTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, int64(101), teams[0].TeamID)

	members, err := c.BulkTeamPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestBulkCSV_BadCell(t *testing.T) {
	srv := bulkServer(t, map[string][]byte{
		"/bulk/player_data.csv": []byte("player_id,last_changed_date\nabc,2024-04-01\n"),
	})
	c := bulkClient(t, srv, swcclient.BulkCSV)

	_, err := c.BulkPlayers(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, swcclient.ErrValidation)

	var verr *swcclient.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "player_id", verr.Field)
}

func TestBulk_MissingFileIsNotFound(t *testing.T) {
	srv := bulkServer(t, map[string][]byte{})
	c := bulkClient(t, srv, swcclient.BulkCSV)

	_, err := c.BulkTeams(context.Background())
	assert.ErrorIs(t, err, swcclient.ErrNotFound)
}

func playersParquet(t *testing.T) []byte {
	t.Helper()
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "player_id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "gsis_id", Type: arrow.BinaryTypes.String},
		{Name: "first_name", Type: arrow.BinaryTypes.String},
		{Name: "last_name", Type: arrow.BinaryTypes.String},
		{Name: "position", Type: arrow.BinaryTypes.String},
		{Name: "last_changed_date", Type: arrow.BinaryTypes.String},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1001, 1002}, nil)
	b.Field(1).(*array.StringBuilder).AppendValues([]string{"00-0019596", "00-0033873"}, nil)
	b.Field(2).(*array.StringBuilder).AppendValues([]string{"Tom", "Patrick"}, nil)
	b.Field(3).(*array.StringBuilder).AppendValues([]string{"Brady", "Mahomes"}, nil)
	b.Field(4).(*array.StringBuilder).AppendValues([]string{"QB", "QB"}, nil)
	b.Field(5).(*array.StringBuilder).AppendValues([]string{"2024-04-01", "2024-04-10"}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := pqarrow.NewFileWriter(schema, &buf, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestBulkParquet(t *testing.T) {
	srv := bulkServer(t, map[string][]byte{
		"/bulk/player_data.parquet": playersParquet(t),
	})
	c := bulkClient(t, srv, swcclient.BulkParquet)

	players, err := c.BulkPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, int64(1002), players[1].PlayerID)
	assert.Equal(t, "Mahomes", players[1].LastName)
	assert.Equal(t, "2024-04-10", players[1].LastChangedDate.String())
	assert.Empty(t, players[0].Performances)
}

func TestBulkParquet_Corrupt(t *testing.T) {
	srv := bulkServer(t, map[string][]byte{
		"/bulk/league_data.parquet": []byte("player_id,last_changed_date\n"),
	})
	c := bulkClient(t, srv, swcclient.BulkParquet)

	_, err := c.BulkLeagues(context.Background())
	assert.ErrorIs(t, err, swcclient.ErrValidation)
}
