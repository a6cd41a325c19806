package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/service/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	got  []dispatch.Request
	resp dispatch.Response
	err  error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req dispatch.Request) (dispatch.Response, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return dispatch.Response{}, f.err
	}
	if req.Branch() == dispatch.BranchNone {
		return dispatch.Response{}, dispatch.ErrNoInput
	}
	return f.resp, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Host:           "127.0.0.1",
		Port:           0,
		AllowedOrigin:  "http://localhost:5173",
		RequestTimeout: 5 * time.Second,
		MaxBody:        "1K",
		ExposeErrors:   true,
	}
}

func newTestServer(t *testing.T, cfg *config.AppConfig, a Analyzer, m *Metrics) http.Handler {
	t.Helper()
	return NewServer(context.Background(), cfg, a, m).Handler()
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestAnalyze_ClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed", `{"query":`, msgInvalidPayload},
		{"empty object", `{}`, msgInvalidPayload},
		{"null", `null`, msgInvalidPayload},
		{"array", `["query"]`, msgInvalidPayload},
		{"non string field", `{"query": 42}`, msgInvalidPayload},
		{"empty fields", `{"query": "", "image_data": null}`, msgNoInput},
		{"whitespace only", `{"query": "   "}`, msgNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, testConfig(), &fakeAnalyzer{}, nil)
			rec, out := post(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error", out["status"])
			assert.Equal(t, tt.message, out["message"])
		})
	}
}

func TestAnalyze_Success(t *testing.T) {
	fa := &fakeAnalyzer{resp: dispatch.Response{
		Analysis: "Verdict: TRUE",
		Thoughts: []dispatch.Thought{},
		Sources:  []string{"https://example.org/a"},
	}}
	h := newTestServer(t, testConfig(), fa, nil)

	rec, out := post(t, h, `{"query":"Did it happen?","image_data":null,"extra":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "Verdict: TRUE", out["analysis"])
	assert.Equal(t, []any{}, out["thoughts"])
	assert.Equal(t, []any{"https://example.org/a"}, out["sources"])
	assert.NotContains(t, out, "audio")

	require.Len(t, fa.got, 1)
	assert.Equal(t, dispatch.Request{Query: "Did it happen?"}, fa.got[0])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAnalyze_ServerError(t *testing.T) {
	stageErr := &dispatch.StageError{Stage: dispatch.StageReasoning, Err: errors.New("quota exceeded")}

	t.Run("exposed", func(t *testing.T) {
		h := newTestServer(t, testConfig(), &fakeAnalyzer{err: stageErr}, nil)
		rec, out := post(t, h, `{"query":"x"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Generative Agent Failed: quota exceeded", out["message"])
	})

	t.Run("hidden", func(t *testing.T) {
		cfg := testConfig()
		cfg.ExposeErrors = false
		h := newTestServer(t, cfg, &fakeAnalyzer{err: stageErr}, nil)
		rec, out := post(t, h, `{"query":"x"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, msgInternal, out["message"])
	})
}

func TestAnalyze_BodyLimit(t *testing.T) {
	h := newTestServer(t, testConfig(), &fakeAnalyzer{}, nil)
	body := `{"query":"` + strings.Repeat("a", 2048) + `"}`

	rec, out := post(t, h, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "error", out["status"])
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, testConfig(), &fakeAnalyzer{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("text", "success", 150*time.Millisecond)
	m.ObserveTool("check_media_forensics", "ok", 10*time.Millisecond)
	h := newTestServer(t, testConfig(), &fakeAnalyzer{}, m)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `truthlens_requests_total{branch="text",outcome="success"} 1`)
	assert.Contains(t, body, `truthlens_tool_invocations_total{outcome="ok",tool="check_media_forensics"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t, testConfig(), &fakeAnalyzer{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"error"`)
}
