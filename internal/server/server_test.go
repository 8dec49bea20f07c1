package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/querykit/internal/engine"
	"github.com/leapstack-labs/querykit/internal/testutil"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialect"
	"github.com/leapstack-labs/querykit/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	return New(Config{
		Engine:   engine.New(engine.Config{Logger: logger}),
		Defaults: testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL),
		Logger:   logger,
	}).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBuild(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, res core.ToolResult)
	}{
		{
			name:       "defaults apply",
			body:       `{"input":"table: users\ncolumns: id, name\nwhere: status = 'active'"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res core.ToolResult) {
				assert.True(t, res.Success)
				assert.Equal(t, "SELECT id, name\nFROM users\nWHERE status = 'active'", res.Query)
				assert.Len(t, res.Suggestions, 4)
			},
		},
		{
			name:       "request config overrides defaults",
			body:       `{"input":"table: users\nwhere: id = 1","config":{"queryType":"delete","database":"postgresql","escapeIdentifiers":true,"formatOutput":false}}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res core.ToolResult) {
				assert.Equal(t, `DELETE FROM "users" WHERE id = 1`, res.Query)
				assert.Equal(t, "DELETE", res.QueryInfo.Type)
			},
		},
		{
			name:       "empty input",
			body:       `{"input":"  "}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, res core.ToolResult) {
				assert.False(t, res.Success)
				assert.Equal(t, core.ErrEmptyInput.Error(), res.Error)
			},
		},
		{
			name:       "unknown database",
			body:       `{"input":"table: t","config":{"database":"db2"}}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, res core.ToolResult) {
				assert.Contains(t, res.Error, "unknown database")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/build", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			tt.check(t, decodeBody[core.ToolResult](t, rec))
		})
	}
}

func TestBuildBadRequest(t *testing.T) {
	h := newTestServer(t)

	for _, body := range []string{"", "{", `{"input":"x","bogus":1}`} {
		rec := do(t, h, http.MethodPost, "/api/build", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.NotEmpty(t, decodeBody[errorResponse](t, rec).Error)
	}

	rec := do(t, h, http.MethodGet, "/api/build", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBatch(t *testing.T) {
	body := `{"items":[
		{"id":"a","input":"table: t1"},
		{"id":"b","input":"table: t2\nset: x = 1","config":{"queryType":"update"}},
		{"name":"empty","input":""}
	]}`

	rec := do(t, newTestServer(t), http.MethodPost, "/api/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[batchResponse](t, rec)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "a", resp.Results[0].ID)
	assert.Equal(t, "SELECT *\nFROM t1", resp.Results[0].Result.Query)
	assert.Equal(t, "UPDATE", resp.Results[1].Result.QueryInfo.Type)
	assert.NotEmpty(t, resp.Results[2].ID)
	assert.False(t, resp.Results[2].Result.Success)
}

func TestFormat(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/format", `{"sql":"select a from t where x = 1 and y = 2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SELECT a\nFROM t\nWHERE x = 1\n  AND y = 2", decodeBody[formatResponse](t, rec).SQL)

	rec = do(t, h, http.MethodPost, "/api/format", `{"sql":"select a from t","uppercaseKeywords":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "select a\nfrom t", decodeBody[formatResponse](t, rec).SQL)

	rec = do(t, h, http.MethodPost, "/api/format", `{"sql":"select 1","database":"db2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/analyze",
		`{"sql":"SELECT * FROM users u JOIN orders o ON o.uid = u.id WHERE u.id IN (SELECT id FROM vip)"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	info := decodeBody[core.QueryInfo](t, rec)
	assert.Equal(t, "SELECT", info.Type)
	assert.Equal(t, []string{"users", "orders"}, info.Tables)
	assert.Equal(t, core.ComplexityComplex, info.Complexity)
}

func TestDialects(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/dialects", "")
	require.Equal(t, http.StatusOK, rec.Code)

	infos := decodeBody[[]dialect.Info](t, rec)
	assert.Len(t, infos, len(core.Databases))
}

func TestSuggestions(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantCount  int
	}{
		{"/api/suggestions", http.StatusOK, len(lint.Catalog())},
		{"/api/suggestions/select", http.StatusOK, 4},
		{"/api/suggestions/DELETE", http.StatusOK, 4},
		{"/api/suggestions/create", http.StatusOK, 0},
		{"/api/suggestions/merge", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Len(t, decodeBody[suggestionsResponse](t, rec).Suggestions, tt.wantCount)
			}
		})
	}
}

func TestServeListenerShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(Config{
		Defaults: testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL),
		Logger:   testutil.NewTestLogger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down")
	}
}
