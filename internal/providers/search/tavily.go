package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/inbucket/html2text"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

var ErrEmptyQuery = errors.New("empty search query")

// maxErrorBody caps how much of a failed response ends up in the error.
const maxErrorBody = 300

// Tavily is a client for the Tavily web-search API.
type Tavily struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

type searchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type searchResponse struct {
	Query   string              `json:"query"`
	Results []core.SearchResult `json:"results"`
}

func NewTavily(cfg core.SearchConfig) *Tavily {
	client := resty.New().
		SetTimeout(cfg.GetTimeout()).
		SetRetryCount(cfg.GetMaxRetries()).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("User-Agent", core.UserAgent).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Tavily{
		client:  client,
		baseURL: strings.TrimRight(cfg.GetTavilyBaseURL(), "/"),
		apiKey:  cfg.GetTavilyAPIKey(),
	}
}

// Search returns at most maxResults ranked results for query.
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]core.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if t.apiKey == "" {
		return nil, core.ErrMissingAPIKey
	}

	log.FromCtx(ctx).Debug().
		Str("query", query).
		Int("max_results", maxResults).
		Msg("tavily search")

	resp, err := t.client.R().
		SetContext(ctx).
		SetAuthToken(t.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(searchRequest{
			Query:       query,
			MaxResults:  maxResults,
			SearchDepth: "basic",
		}).
		Post(t.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}

	if !resp.IsSuccess() {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody] + "..."
		}
		return nil, fmt.Errorf("tavily http %d: %s", resp.StatusCode(), body)
	}

	var out searchResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode tavily response: %w", err)
	}

	if len(out.Results) > maxResults && maxResults > 0 {
		out.Results = out.Results[:maxResults]
	}
	if out.Results == nil {
		out.Results = []core.SearchResult{}
	}
	for i := range out.Results {
		out.Results[i].Content = plainText(out.Results[i].Content)
	}
	return out.Results, nil
}

// plainText flattens snippets that arrive as HTML fragments. Plain snippets are returned as is.
func plainText(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return s
	}
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return s
	}
	return strings.TrimSpace(text)
}
