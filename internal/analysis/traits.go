package analysis

import "strings"

// Trait score scaling: each cumulative keyword hit is worth 5 points, and
// scores saturate at 100. Saturation over decay is intentional; callers that
// need recency must use the trend analyzer instead.
const (
	traitScalePerHit = 5
	traitScoreCap    = 100
)

// TraitCounts holds a user's cumulative keyword-hit counts per trait.
// Counts only ever increase.
type TraitCounts map[Trait]int

// NewTraitCounts returns a zero-valued count map covering all traits.
func NewTraitCounts() TraitCounts {
	counts := make(TraitCounts, len(Traits))
	for _, trait := range Traits {
		counts[trait] = 0
	}
	return counts
}

// Clone returns an independent copy of the counts.
func (c TraitCounts) Clone() TraitCounts {
	clone := make(TraitCounts, len(c))
	for trait, count := range c {
		clone[trait] = count
	}
	return clone
}

// Accumulate adds the keyword occurrences found in text to the counts.
// Matching is case-insensitive substring counting: a keyword may match
// inside a longer word, and repeated occurrences each count.
func (c TraitCounts) Accumulate(text string) {
	lower := strings.ToLower(text)
	for _, trait := range Traits {
		for _, keyword := range traitKeywords[trait] {
			c[trait] += strings.Count(lower, keyword)
		}
	}
}

// Scores returns the normalized 0-100 score per trait:
// min(count * 5, 100). Monotonically non-decreasing as messages accumulate.
func (c TraitCounts) Scores() map[Trait]float64 {
	scores := make(map[Trait]float64, len(Traits))
	for _, trait := range Traits {
		scores[trait] = TraitScore(c[trait])
	}
	return scores
}

// TraitScore converts a cumulative hit count to its saturating 0-100 score.
func TraitScore(count int) float64 {
	score := count * traitScalePerHit
	if score > traitScoreCap {
		return traitScoreCap
	}
	return float64(score)
}

// Dominant returns the trait with the highest score. Ties break by trait
// declaration order, so the result is deterministic.
func (c TraitCounts) Dominant() Trait {
	dominant := Traits[0]
	best := c[dominant]
	for _, trait := range Traits[1:] {
		if c[trait] > best {
			dominant = trait
			best = c[trait]
		}
	}
	return dominant
}
