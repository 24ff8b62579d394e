package daemon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

const testToken = "s3cret"

type testDaemon struct {
	server *Server
	http   *httptest.Server
	repo   *database.Repository
	client *remote.Client
}

func setupTestDaemon(t *testing.T) *testDaemon {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitDB(ctx, database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := database.NewRepository(db)
	require.NoError(t, database.Seed(ctx, repo))

	srv, err := NewServer("127.0.0.1:0", repo, WithToken(testToken))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := remote.NewClient(ts.URL, remote.WithTokenSource(remote.StaticToken(testToken)))
	require.NoError(t, err)

	return &testDaemon{server: srv, http: ts, repo: repo, client: client}
}

func (d *testDaemon) sales(t *testing.T) *models.PipelineDetail {
	t.Helper()
	pipelines, err := d.client.ListPipelines(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pipelines)

	detail, err := d.client.GetPipeline(context.Background(), pipelines[0].ID)
	require.NoError(t, err)
	return detail
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestPipelinesEndpoints(t *testing.T) {
	d := setupTestDaemon(t)
	ctx := context.Background()

	pipelines, err := d.client.ListPipelines(ctx)
	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	assert.Equal(t, "Sales", pipelines[0].Name)
	assert.True(t, pipelines[0].IsDefault)

	detail := d.sales(t)
	require.Len(t, detail.Stages, 4)
	assert.Equal(t, "Lead", detail.Stages[0].Name)
	assert.Equal(t, "Won", detail.Stages[3].Name)

	_, err = d.client.GetPipeline(ctx, 999)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestDealsEndpoint_Scoping(t *testing.T) {
	d := setupTestDaemon(t)
	ctx := context.Background()
	sales := d.sales(t)

	scoped, err := d.client.ListDeals(ctx, types.PipelinePtr(sales.ID))
	require.NoError(t, err)
	assert.Len(t, scoped, 4)

	all, err := d.client.ListDeals(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestMoveDeal_RoundTrip(t *testing.T) {
	d := setupTestDaemon(t)
	ctx := context.Background()
	sales := d.sales(t)

	deals, err := d.client.ListDeals(ctx, types.PipelinePtr(sales.ID))
	require.NoError(t, err)
	target := sales.Stages[1]

	moved, err := d.client.MoveDeal(ctx, deals[0].ID, models.StageMove{StageID: target.ID, PipelineID: types.PipelinePtr(sales.ID)})
	require.NoError(t, err)
	assert.Equal(t, target.ID, *moved.StageID)
	assert.Equal(t, target.Name, moved.LegacyStatus)
	assert.False(t, moved.UpdatedAt.IsZero())

	snap := d.server.Metrics().GetSnapshot()
	assert.Equal(t, int64(1), snap.MovesAccepted)
}

func TestMoveDeal_Rejected(t *testing.T) {
	d := setupTestDaemon(t)
	ctx := context.Background()
	sales := d.sales(t)

	deals, err := d.client.ListDeals(ctx, types.PipelinePtr(sales.ID))
	require.NoError(t, err)

	_, err = d.client.MoveDeal(ctx, deals[0].ID, models.StageMove{StageID: sales.Stages[1].ID, PipelineID: types.PipelinePtr(999)})
	require.Error(t, err)

	var statusErr *remote.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, remote.ErrRejected, remote.Classify(err).Code)

	_, err = d.client.MoveDeal(ctx, 9999, models.StageMove{StageID: sales.Stages[1].ID})
	assert.ErrorIs(t, err, remote.ErrNotFound)

	assert.Equal(t, int64(2), d.server.Metrics().GetSnapshot().MovesRejected)
}

func TestMoveDeal_BadBody(t *testing.T) {
	d := setupTestDaemon(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing stage", `{"pipelineId": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/deals/1", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer "+testToken)
			rec := httptest.NewRecorder()
			d.server.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAuthRequired(t *testing.T) {
	d := setupTestDaemon(t)

	anon, err := remote.NewClient(d.http.URL)
	require.NoError(t, err)
	_, err = anon.ListPipelines(context.Background())
	assert.ErrorIs(t, err, remote.ErrUnauthorized)

	wrong, err := remote.NewClient(d.http.URL, remote.WithTokenSource(remote.StaticToken("nope")))
	require.NoError(t, err)
	_, err = wrong.ListPipelines(context.Background())
	assert.ErrorIs(t, err, remote.ErrUnauthorized)

	assert.Equal(t, int64(2), d.server.Metrics().GetSnapshot().AuthFailures)
}

func TestMetricsEndpoint(t *testing.T) {
	d := setupTestDaemon(t)
	_, err := d.client.ListPipelines(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(d.http.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap MetricsSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.GreaterOrEqual(t, snap.RequestsTotal, int64(2))
	assert.Equal(t, int32(1), snap.InFlight, "the metrics request itself is in flight")
}

func TestRequestIDEchoed(t *testing.T) {
	d := setupTestDaemon(t)

	req := httptest.NewRequest(http.MethodGet, "/pipelines", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(remote.RequestIDHeader, "drag-123")
	rec := httptest.NewRecorder()
	d.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "drag-123", rec.Header().Get(remote.RequestIDHeader))
}

func TestStart_StopsOnCancel(t *testing.T) {
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv, err := NewServer("127.0.0.1:0", database.NewRepository(db))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	client, err := remote.NewClient("http://" + srv.Addr())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := client.ListPipelines(context.Background())
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	// Idempotent
	assert.NoError(t, srv.Shutdown())
}
