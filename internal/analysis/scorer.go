// Package analysis implements the behavioral analytics engine: per-message
// lexical scoring, cumulative trait accumulation, per-day rollups, trend
// analysis over daily records, and report composition.
package analysis

import (
	"strings"

	"github.com/introbot/introspect/internal/sentiment"
)

// Scoring constants. Band thresholds and scale factors are fixed, not
// configurable per call.
const (
	positiveBandThreshold = 0.1
	negativeBandThreshold = -0.1

	stressScalePerHit = 2.5
	stressCap         = 10.0
)

// MoodBand is the coarse classification of a polarity value.
type MoodBand string

// The bands are exhaustive and non-overlapping over [-1, 1].
const (
	MoodPositive MoodBand = "positive"
	MoodNegative MoodBand = "negative"
	MoodNeutral  MoodBand = "neutral"
)

// MessageScore holds the per-message signals derived by the lexical scorer.
type MessageScore struct {
	Sentiment float64 // polarity in [-1, 1]
	WordCount int
	Stress    float64 // 0..10
}

// Band returns the mood band for the score's polarity.
func (s MessageScore) Band() MoodBand {
	return ClassifyMood(s.Sentiment)
}

// ClassifyMood maps a polarity in [-1, 1] to exactly one mood band.
func ClassifyMood(polarity float64) MoodBand {
	switch {
	case polarity > positiveBandThreshold:
		return MoodPositive
	case polarity < negativeBandThreshold:
		return MoodNegative
	default:
		return MoodNeutral
	}
}

// Scorer computes per-message signals from text. It is stateless; the
// polarity comes from the injected sentiment analyzer.
type Scorer struct {
	analyzer sentiment.Analyzer
}

// NewScorer returns a Scorer using the given analyzer for polarity.
func NewScorer(analyzer sentiment.Analyzer) *Scorer {
	return &Scorer{analyzer: analyzer}
}

// Score derives sentiment, word count, and stress level for text.
// Empty text yields a zero score (neutral, no words, no stress).
func (s *Scorer) Score(text string) MessageScore {
	words := strings.Fields(text)
	if len(words) == 0 {
		return MessageScore{}
	}

	return MessageScore{
		Sentiment: s.analyzer.Polarity(text),
		WordCount: len(words),
		Stress:    StressLevel(text),
	}
}

// StressLevel counts stress keywords present in text (case-insensitive, one
// hit per keyword) and scales the count by 2.5, capped at 10.0.
func StressLevel(text string) float64 {
	lower := strings.ToLower(text)

	hits := 0
	for _, keyword := range stressKeywords {
		if strings.Contains(lower, keyword) {
			hits++
		}
	}

	level := float64(hits) * stressScalePerHit
	if level > stressCap {
		return stressCap
	}
	return level
}
