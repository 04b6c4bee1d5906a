package analysis

// Trait identifies one of the five fixed personality dimensions scored by
// keyword frequency.
type Trait string

// The five traits, in declaration order. Order matters: it is the tie-break
// for dominant-trait selection.
const (
	TraitExtraversion      Trait = "extraversion"
	TraitOpenness          Trait = "openness"
	TraitConscientiousness Trait = "conscientiousness"
	TraitAgreeableness     Trait = "agreeableness"
	TraitNeuroticism       Trait = "neuroticism"
)

// Traits lists all traits in declaration order.
var Traits = []Trait{
	TraitExtraversion,
	TraitOpenness,
	TraitConscientiousness,
	TraitAgreeableness,
	TraitNeuroticism,
}

// TraitDescriptions maps each trait to its human-readable label used in reports.
var TraitDescriptions = map[Trait]string{
	TraitExtraversion:      "Social Energy & Outgoingness",
	TraitOpenness:          "Creativity & Open-mindedness",
	TraitConscientiousness: "Organization & Discipline",
	TraitAgreeableness:     "Cooperation & Kindness",
	TraitNeuroticism:       "Emotional Sensitivity",
}

// traitKeywords holds the process-wide read-only keyword lists per trait.
// Loaded once at startup, never mutated at runtime. Matching is
// case-insensitive substring counting, so a keyword may match inside a
// longer word ("talk" matches "talking").
var traitKeywords = map[Trait][]string{
	TraitExtraversion:      {"party", "friends", "social", "outgoing", "energy", "talk", "people"},
	TraitOpenness:          {"creative", "art", "new", "explore", "imagination", "curious", "different"},
	TraitConscientiousness: {"organized", "plan", "schedule", "work", "goal", "discipline", "complete"},
	TraitAgreeableness:     {"help", "kind", "support", "care", "team", "cooperation", "please"},
	TraitNeuroticism:       {"stress", "worry", "anxious", "nervous", "fear", "sad", "upset"},
}

// stressKeywords is the fixed stress-indicator set. A message scores one hit
// per keyword present, regardless of how often the keyword repeats.
var stressKeywords = []string{
	"deadline", "pressure", "overwhelmed", "can't", "too much", "tired", "exhausted",
}
