package dispatch

import (
	"strings"

	"github.com/sandevgo/truthlens/internal/service/agent"
)

// thoughtDetailLimit is the number of runes of an observation shown per thought.
const thoughtDetailLimit = 150

// thoughtsFromSteps renders one thought per trace step. The ellipsis is always appended.
func thoughtsFromSteps(steps []agent.Step) []Thought {
	thoughts := make([]Thought, 0, len(steps))
	for _, s := range steps {
		thoughts = append(thoughts, Thought{
			Step:    s.Tool,
			Details: truncateRunes(s.Observation, thoughtDetailLimit) + "...",
		})
	}
	return thoughts
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// modelLabel turns "gemini-2.5-flash" into "Gemini 2.5 Flash".
func modelLabel(model string) string {
	model = strings.TrimPrefix(model, "models/")
	words := strings.FieldsFunc(model, func(r rune) bool { return r == '-' || r == '_' || r == '/' })
	for i, w := range words {
		if w != "" && w[0] >= 'a' && w[0] <= 'z' {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
