// Package sentiment provides the polarity-scoring capability consumed by the
// analysis engine. The engine treats the analyzer as a black box returning a
// polarity in [-1, 1]; the default implementation is backed by the VADER lexicon.
package sentiment

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Analyzer scores the polarity of a piece of text.
// Implementations must be safe for concurrent use and must return a value
// in [-1, 1], where negative is unfavorable and positive is favorable.
type Analyzer interface {
	Polarity(text string) float64
}

// VaderAnalyzer scores text using the VADER sentiment lexicon.
// It is stateless and safe for concurrent use.
type VaderAnalyzer struct{}

// NewVaderAnalyzer returns an Analyzer backed by the default VADER lexicon.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{}
}

// Polarity returns the VADER compound score for text, clamped to [-1, 1].
// Empty or whitespace-only text scores 0.
func (a *VaderAnalyzer) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed).Compound

	// The compound score is normalized to [-1, 1] already; clamp to be safe
	// against lexicon edge cases.
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
