package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/truthlens/internal/core"
)

const (
	VerdictAuthentic = "Likely Authentic"
	VerdictAltered   = "Altered"

	// AlteredThreshold is the score above which media is reported as altered.
	AlteredThreshold = 0.5
)

// ForensicReport is the result of a media-integrity check.
type ForensicReport struct {
	DeepfakeScore   float64 `json:"deepfake_score"`
	Verdict         string  `json:"verdict"`
	ForensicDetails string  `json:"forensic_details"`
}

// Scorer estimates the probability that the media at path was manipulated.
type Scorer interface {
	Score(ctx context.Context, path string) (score float64, details string, err error)
}

// FilenameScorer is a placeholder that flags any path containing "fake".
type FilenameScorer struct{}

func (FilenameScorer) Score(_ context.Context, path string) (float64, string, error) {
	if strings.Contains(strings.ToLower(path), "fake") {
		return 0.88, "No sync errors detected.", nil
	}
	return 0.12, "No sync errors detected.", nil
}

type Forensics struct {
	scorer Scorer
}

func NewForensics(scorer Scorer) *Forensics {
	if scorer == nil {
		scorer = FilenameScorer{}
	}
	return &Forensics{scorer: scorer}
}

func (f *Forensics) Analyze(ctx context.Context, path string) (ForensicReport, error) {
	score, details, err := f.scorer.Score(ctx, strings.TrimSpace(path))
	if err != nil {
		return ForensicReport{}, fmt.Errorf("score media: %w", err)
	}

	verdict := VerdictAuthentic
	if score > AlteredThreshold {
		verdict = VerdictAltered
	}
	return ForensicReport{
		DeepfakeScore:   score,
		Verdict:         verdict,
		ForensicDetails: details,
	}, nil
}

func (f *Forensics) CheckMediaForensics(ctx context.Context, input string) (string, error) {
	report, err := f.Analyze(ctx, input)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *Forensics) Definitions() []core.Tool {
	return []core.Tool{
		{
			Name:        "check_media_forensics",
			Description: "Checks a video or image file for signs of manipulation/deepfakes. Returns a confidence score and verdict.",
			Invoke:      f.CheckMediaForensics,
		},
	}
}
