package analysis_test

import (
	"testing"

	"github.com/introbot/introspect/internal/analysis"
)

// fixedAnalyzer returns a constant polarity for any text.
type fixedAnalyzer struct {
	polarity float64
}

func (f fixedAnalyzer) Polarity(string) float64 {
	return f.polarity
}

func TestClassifyMood(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		polarity float64
		expected analysis.MoodBand
	}{
		{name: "Clearly positive", polarity: 0.8, expected: analysis.MoodPositive},
		{name: "Just above positive threshold", polarity: 0.11, expected: analysis.MoodPositive},
		{name: "At positive threshold is neutral", polarity: 0.1, expected: analysis.MoodNeutral},
		{name: "Zero", polarity: 0.0, expected: analysis.MoodNeutral},
		{name: "At negative threshold is neutral", polarity: -0.1, expected: analysis.MoodNeutral},
		{name: "Just below negative threshold", polarity: -0.11, expected: analysis.MoodNegative},
		{name: "Clearly negative", polarity: -0.9, expected: analysis.MoodNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := analysis.ClassifyMood(tt.polarity); got != tt.expected {
				t.Errorf("ClassifyMood(%v) = %q, want %q", tt.polarity, got, tt.expected)
			}
		})
	}
}

func TestStressLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{
			name:     "No stress keywords",
			text:     "I'm feeling really excited about my new project!",
			expected: 0.0,
		},
		{
			name:     "Two keywords",
			text:     "This deadline is really stressing me out, I feel overwhelmed",
			expected: 5.0,
		},
		{
			name:     "Repeated keyword counts once",
			text:     "deadline after deadline after deadline",
			expected: 2.5,
		},
		{
			name:     "Case insensitive",
			text:     "The DEADLINE is close and I am EXHAUSTED",
			expected: 5.0,
		},
		{
			name:     "Multi-word keyword",
			text:     "this is just too much for me",
			expected: 2.5,
		},
		{
			name:     "All keywords cap at ten",
			text:     "deadline pressure overwhelmed can't too much tired exhausted",
			expected: 10.0,
		},
		{
			name:     "Empty text",
			text:     "",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := analysis.StressLevel(tt.text); got != tt.expected {
				t.Errorf("StressLevel(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestScorerScore(t *testing.T) {
	t.Parallel()

	t.Run("Positive message", func(t *testing.T) {
		t.Parallel()

		scorer := analysis.NewScorer(fixedAnalyzer{polarity: 0.4})
		score := scorer.Score("I'm feeling really excited about my new project!")

		if score.WordCount != 8 {
			t.Errorf("WordCount = %d, want 8", score.WordCount)
		}
		if score.Stress != 0.0 {
			t.Errorf("Stress = %v, want 0.0", score.Stress)
		}
		if score.Band() != analysis.MoodPositive {
			t.Errorf("Band() = %q, want %q", score.Band(), analysis.MoodPositive)
		}
	})

	t.Run("Stressed message", func(t *testing.T) {
		t.Parallel()

		scorer := analysis.NewScorer(fixedAnalyzer{polarity: -0.3})
		score := scorer.Score("This deadline is really stressing me out, I feel overwhelmed")

		if score.Stress != 5.0 {
			t.Errorf("Stress = %v, want 5.0", score.Stress)
		}
		if score.Band() != analysis.MoodNegative {
			t.Errorf("Band() = %q, want %q", score.Band(), analysis.MoodNegative)
		}
	})

	t.Run("Whitespace only yields zero score", func(t *testing.T) {
		t.Parallel()

		scorer := analysis.NewScorer(fixedAnalyzer{polarity: 0.9})
		score := scorer.Score("   \t\n  ")

		if score != (analysis.MessageScore{}) {
			t.Errorf("Score(whitespace) = %+v, want zero value", score)
		}
	})
}
