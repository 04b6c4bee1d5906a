package analysis_test

import (
	"testing"

	"github.com/introbot/introspect/internal/analysis"
)

func TestTraitCountsAccumulate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		texts    []string
		trait    analysis.Trait
		expected int
	}{
		{
			name:     "Single keyword",
			texts:    []string{"let's have a party"},
			trait:    analysis.TraitExtraversion,
			expected: 1,
		},
		{
			name:     "Repeated keyword counts each occurrence",
			texts:    []string{"party party party"},
			trait:    analysis.TraitExtraversion,
			expected: 3,
		},
		{
			name:     "Substring match inside longer word",
			texts:    []string{"we were talking all night"},
			trait:    analysis.TraitExtraversion,
			expected: 1,
		},
		{
			name:     "Case insensitive",
			texts:    []string{"I love ART and being CREATIVE"},
			trait:    analysis.TraitOpenness,
			expected: 2,
		},
		{
			name:     "Accumulates across messages",
			texts:    []string{"I made a plan", "finish the goal", "stay organized"},
			trait:    analysis.TraitConscientiousness,
			expected: 3,
		},
		{
			name:     "No keywords",
			texts:    []string{"nothing relevant here"},
			trait:    analysis.TraitNeuroticism,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			counts := analysis.NewTraitCounts()
			for _, text := range tt.texts {
				counts.Accumulate(text)
			}
			if got := counts[tt.trait]; got != tt.expected {
				t.Errorf("counts[%s] = %d, want %d", tt.trait, got, tt.expected)
			}
		})
	}
}

func TestTraitScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		count    int
		expected float64
	}{
		{name: "Zero hits", count: 0, expected: 0},
		{name: "One hit", count: 1, expected: 5},
		{name: "Just below cap", count: 19, expected: 95},
		{name: "At cap", count: 20, expected: 100},
		{name: "Saturates above cap", count: 500, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := analysis.TraitScore(tt.count); got != tt.expected {
				t.Errorf("TraitScore(%d) = %v, want %v", tt.count, got, tt.expected)
			}
		})
	}
}

func TestTraitScoresMonotoneAndBounded(t *testing.T) {
	t.Parallel()

	counts := analysis.NewTraitCounts()
	prev := counts.Scores()

	for i := 0; i < 40; i++ {
		counts.Accumulate("party with friends, so much social energy")
		scores := counts.Scores()

		for _, trait := range analysis.Traits {
			if scores[trait] < prev[trait] {
				t.Fatalf("score for %s decreased: %v -> %v", trait, prev[trait], scores[trait])
			}
			if scores[trait] < 0 || scores[trait] > 100 {
				t.Fatalf("score for %s out of bounds: %v", trait, scores[trait])
			}
		}
		prev = scores
	}

	if prev[analysis.TraitExtraversion] != 100 {
		t.Errorf("extraversion after 40 keyword-rich messages = %v, want saturated 100", prev[analysis.TraitExtraversion])
	}
}

func TestTraitCountsDominant(t *testing.T) {
	t.Parallel()

	t.Run("All zero falls back to first trait", func(t *testing.T) {
		t.Parallel()

		counts := analysis.NewTraitCounts()
		if got := counts.Dominant(); got != analysis.TraitExtraversion {
			t.Errorf("Dominant() = %q, want %q", got, analysis.TraitExtraversion)
		}
	})

	t.Run("Highest count wins", func(t *testing.T) {
		t.Parallel()

		counts := analysis.NewTraitCounts()
		counts[analysis.TraitAgreeableness] = 7
		counts[analysis.TraitOpenness] = 3
		if got := counts.Dominant(); got != analysis.TraitAgreeableness {
			t.Errorf("Dominant() = %q, want %q", got, analysis.TraitAgreeableness)
		}
	})

	t.Run("Tie breaks by declaration order", func(t *testing.T) {
		t.Parallel()

		counts := analysis.NewTraitCounts()
		counts[analysis.TraitOpenness] = 4
		counts[analysis.TraitNeuroticism] = 4
		if got := counts.Dominant(); got != analysis.TraitOpenness {
			t.Errorf("Dominant() = %q, want %q", got, analysis.TraitOpenness)
		}
	})
}

func TestTraitCountsClone(t *testing.T) {
	t.Parallel()

	counts := analysis.NewTraitCounts()
	counts.Accumulate("creative new art")

	clone := counts.Clone()
	clone.Accumulate("creative new art")

	if counts[analysis.TraitOpenness] == clone[analysis.TraitOpenness] {
		t.Errorf("clone mutation leaked into original: both have %d", counts[analysis.TraitOpenness])
	}
}
