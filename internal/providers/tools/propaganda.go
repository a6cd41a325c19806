package tools

import (
	"context"

	"github.com/sandevgo/truthlens/internal/core"
)

const propagandaAdvice = "Analyzed rhetorical structure. Look for: Emotional loading, 'Us vs Them' framing, and logical gaps."

// Propaganda is a placeholder heuristic; it returns the same advisory for any text.
type Propaganda struct{}

func NewPropaganda() *Propaganda {
	return &Propaganda{}
}

func (p *Propaganda) AnalyzePropagandaPatterns(_ context.Context, _ string) (string, error) {
	return propagandaAdvice, nil
}

func (p *Propaganda) Definitions() []core.Tool {
	return []core.Tool{
		{
			Name:        "analyze_propaganda_patterns",
			Description: "Analyzes text for psychological manipulation, logical fallacies, and emotional triggers (e.g., Fear Mongering, Whataboutism).",
			Invoke:      p.AnalyzePropagandaPatterns,
		},
	}
}
