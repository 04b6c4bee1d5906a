package analysis

// Trend classification epsilon: the half-split means must differ by more
// than this before a trend counts as increasing or decreasing.
const trendEpsilon = 0.05

// TrendDirection is the coarse classification of a metric across a window.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendFlat             TrendDirection = "flat"
	TrendInsufficientData TrendDirection = "insufficient-data"
)

// TrendSummary is derived on demand from an ordered sequence of daily
// records. It is never persisted.
type TrendSummary struct {
	Days              int
	AvgSentiment      float64
	SentimentVariance float64
	MoodDirection     TrendDirection
	StressTrajectory  TrendDirection
	DominantTrait     Trait
}

// AnalyzeTrend derives a trend summary from daily records ordered oldest to
// newest. window bounds how many most-recent records participate; window <= 0
// means all available. With fewer than 2 records both directions are
// insufficient-data, which is a terminal classification, not an error.
func AnalyzeTrend(records []DailyRecord, window int) TrendSummary {
	if window > 0 && len(records) > window {
		records = records[len(records)-window:]
	}

	summary := TrendSummary{
		Days:             len(records),
		MoodDirection:    TrendInsufficientData,
		StressTrajectory: TrendInsufficientData,
	}
	if len(records) == 0 {
		return summary
	}

	// Per-day averages weight every day equally, regardless of how many
	// messages it holds.
	sentiments := make([]float64, len(records))
	stresses := make([]float64, len(records))
	for i, record := range records {
		sentiments[i] = record.AvgSentiment()
		stresses[i] = record.AvgStress()
	}

	summary.AvgSentiment = mean(sentiments)
	summary.SentimentVariance = populationVariance(sentiments, summary.AvgSentiment)
	summary.DominantTrait = dominantFromSnapshot(records[len(records)-1].TraitSnapshot)

	if len(records) >= 2 {
		summary.MoodDirection = halfSplitDirection(sentiments)
		summary.StressTrajectory = halfSplitDirection(stresses)
	}

	return summary
}

// halfSplitDirection compares the mean of the first half of the values to
// the mean of the second half. With odd length the middle value lands in
// the second half.
func halfSplitDirection(values []float64) TrendDirection {
	if len(values) < 2 {
		return TrendInsufficientData
	}

	mid := len(values) / 2
	delta := mean(values[mid:]) - mean(values[:mid])

	switch {
	case delta > trendEpsilon:
		return TrendIncreasing
	case delta < -trendEpsilon:
		return TrendDecreasing
	default:
		return TrendFlat
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationVariance(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

// dominantFromSnapshot picks the highest-scoring trait from a snapshot,
// with ties broken by trait declaration order.
func dominantFromSnapshot(snapshot map[Trait]float64) Trait {
	dominant := Traits[0]
	best := snapshot[dominant]
	for _, trait := range Traits[1:] {
		if snapshot[trait] > best {
			dominant = trait
			best = snapshot[trait]
		}
	}
	return dominant
}
