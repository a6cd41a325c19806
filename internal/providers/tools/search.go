package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

const (
	recordsMaxResults    = 7
	reputationMaxResults = 5

	reputationQuery = "site:mediabiasfactcheck.com OR site:newsguardtech.com OR site:wikipedia.org %s reliability bias"
)

// Search wraps the web-search provider into the record and reputation tools.
type Search struct {
	provider core.SearchProvider
}

func NewSearch(provider core.SearchProvider) *Search {
	return &Search{provider: provider}
}

func (s *Search) SearchPoliticalRecords(ctx context.Context, query string) (string, error) {
	return s.run(ctx, query, recordsMaxResults)
}

func (s *Search) AnalyzeSourceReputation(ctx context.Context, domain string) (string, error) {
	return s.run(ctx, fmt.Sprintf(reputationQuery, domain), reputationMaxResults)
}

func (s *Search) run(ctx context.Context, query string, limit int) (string, error) {
	results, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		return "", err
	}
	log.FromCtx(ctx).Debug().Int("results", len(results)).Msg("search completed")

	// Keep URLs verbatim: no \u0026 for '&' in query strings.
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (s *Search) Definitions() []core.Tool {
	return []core.Tool{
		{
			Name:        "search_political_records",
			Description: "Searches official political records, manifestos, and news for verifying claims.",
			Invoke:      s.SearchPoliticalRecords,
		},
		{
			Name:        "analyze_source_reputation",
			Description: "Searches for the credibility, bias, and fact-check history of a news domain or website. Use this when the user asks to check a 'Source', 'Domain' or 'Website'.",
			Invoke:      s.AnalyzeSourceReputation,
		},
	}
}
