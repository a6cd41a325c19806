package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	key, url string
	retries  int
}

func (c testConfig) GetTavilyAPIKey() string   { return c.key }
func (c testConfig) GetTavilyBaseURL() string  { return c.url }
func (c testConfig) GetTimeout() time.Duration { return 2 * time.Second }
func (c testConfig) GetMaxRetries() int        { return c.retries }

func TestTavily_Search(t *testing.T) {
	var (
		gotAuth string
		gotReq  searchRequest
		calls   atomic.Int32
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":"q","results":[
			{"title":"A","url":"https://a.example/1","content":"first","score":0.9},
			{"title":"B","url":"https://b.example/2","content":"second","score":0.5}
		]}`))
	}))
	defer srv.Close()

	tv := NewTavily(testConfig{key: "tvly-key", url: srv.URL + "/"})
	results, err := tv.Search(context.Background(), "  senate vote  ", 7)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tvly-key", gotAuth)
	assert.Equal(t, searchRequest{Query: "senate vote", MaxResults: 7, SearchDepth: "basic"}, gotReq)
	require.Len(t, results, 2)
	assert.Equal(t, core.SearchResult{Title: "A", URL: "https://a.example/1", Content: "first", Score: 0.9}, results[0])
	assert.Equal(t, int32(1), calls.Load())
}

func TestTavily_Errors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	t.Run("empty query", func(t *testing.T) {
		_, err := NewTavily(testConfig{key: "k", url: srv.URL}).Search(context.Background(), "   ", 5)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewTavily(testConfig{url: srv.URL}).Search(context.Background(), "q", 5)
		assert.ErrorIs(t, err, core.ErrMissingAPIKey)
	})

	assert.Equal(t, int32(0), calls.Load())

	t.Run("non-2xx is not retried and truncated", func(t *testing.T) {
		_, err := NewTavily(testConfig{key: "k", url: srv.URL, retries: 2}).Search(context.Background(), "q", 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tavily http 401")
		assert.Less(t, len(err.Error()), 400)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestTavily_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	results, err := NewTavily(testConfig{key: "k", url: srv.URL, retries: 1}).Search(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "plain snippet", plainText("plain snippet"))
	assert.Equal(t, "a < b", plainText("a < b"))

	out := plainText("<p>Vote passed</p><p>in <span>2021</span></p>")
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "Vote passed")
	assert.Contains(t, out, "2021")
}
