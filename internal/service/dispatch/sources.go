package dispatch

import (
	"regexp"
	"strings"

	"github.com/sandevgo/truthlens/internal/service/agent"
)

// urlPattern also stops at quotes, backslashes and angle brackets so URLs
// inside JSON or HTML tool output end where the string does.
var urlPattern = regexp.MustCompile(`https?://[^\s)}\]'"\\<>]+`)

// extractSources collects every URL mentioned anywhere in the reasoning result,
// deduplicated in first-seen order.
func extractSources(res agent.Result) []string {
	texts := make([]string, 0, 2+3*len(res.Steps))
	texts = append(texts, res.Input)
	for _, s := range res.Steps {
		texts = append(texts, s.Input, s.Log, s.Observation)
	}
	texts = append(texts, res.Output)

	return extractURLs(texts...)
}

func extractURLs(texts ...string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, text := range texts {
		for _, u := range urlPattern.FindAllString(text, -1) {
			u = strings.TrimRight(u, `.,;:!?"*>`)
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}
