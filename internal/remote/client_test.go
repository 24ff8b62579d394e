package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, WithTokenSource(StaticToken("s3cret")))
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	assert.Error(t, err)

	_, err = NewClient("::nope")
	assert.Error(t, err)
}

func TestListPipelines(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pipelines", r.URL.Path)
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id":5,"name":"Sales","isDefault":false,"currency":"EUR"},{"id":7,"name":"Renewals","isDefault":true,"currency":"USD"}]`)
	})

	pipelines, err := c.ListPipelines(context.Background())
	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	assert.Equal(t, types.PipelineID(7), pipelines[1].ID)
	assert.True(t, pipelines[1].IsDefault)
	assert.Equal(t, "EUR", pipelines[0].Currency)
}

func TestGetPipeline_PreservesStageOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pipelines/3", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":3,"name":"P","currency":"USD","stages":[{"id":9,"name":"Z","color":"#fff","probability":10},{"id":2,"name":"A","color":"#000","probability":90}]}`)
	})

	detail, err := c.GetPipeline(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, detail.Stages, 2)
	assert.Equal(t, types.StageID(9), detail.Stages[0].ID)
	assert.Equal(t, types.StageID(2), detail.Stages[1].ID)
	assert.Equal(t, types.PipelineID(3), detail.Stages[0].PipelineID)
}

func TestListDeals_Query(t *testing.T) {
	var gotQuery []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = append(gotQuery, r.URL.RawQuery)
		_, _ = io.WriteString(w, `[{"id":1,"pipelineId":null,"stageId":null,"legacyStatus":"Lead","value":10}]`)
	})

	deals, err := c.ListDeals(context.Background(), types.PipelinePtr(4))
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Nil(t, deals[0].PipelineID)
	assert.Equal(t, "Lead", deals[0].LegacyStatus)

	_, err = c.ListDeals(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"pipelineId=4", ""}, gotQuery)
}

func TestMoveDeal_SendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/deals/12", r.URL.Path)
		assert.Equal(t, "drag-1", r.Header.Get(RequestIDHeader))

		var move models.StageMove
		require.NoError(t, json.NewDecoder(r.Body).Decode(&move))
		assert.Equal(t, types.StageID(2), move.StageID)
		require.NotNil(t, move.PipelineID)
		assert.Equal(t, types.PipelineID(7), *move.PipelineID)

		_, _ = io.WriteString(w, `{"id":12,"pipelineId":7,"stageId":2,"legacyStatus":"Proposal"}`)
	})

	ctx := WithRequestID(context.Background(), "drag-1")
	deal, err := c.MoveDeal(ctx, 12, models.StageMove{StageID: 2, PipelineID: types.PipelinePtr(7)})
	require.NoError(t, err)
	assert.Equal(t, "Proposal", deal.LegacyStatus)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
		code   ErrorCode
	}{
		{"not found", http.StatusNotFound, `{"error":"no such pipeline"}`, ErrNotFound, ErrMissing},
		{"unauthorized", http.StatusUnauthorized, ``, ErrUnauthorized, ErrAuth},
		{"forbidden", http.StatusForbidden, ``, ErrUnauthorized, ErrAuth},
		{"rejected", http.StatusUnprocessableEntity, `{"error":"stage not in pipeline"}`, nil, ErrRejected},
		{"server", http.StatusInternalServerError, `boom`, nil, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetPipeline(context.Background(), 1)
			require.Error(t, err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.Equal(t, tt.code, Classify(err).Code)
		})
	}
}

func TestClassify_Unreachable(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = c.ListPipelines(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrUnreachable, Classify(err).Code)
	assert.Nil(t, Classify(nil))
}

func TestClassify_Timeout(t *testing.T) {
	assert.Equal(t, ErrTimeout, Classify(context.DeadlineExceeded).Code)
}
