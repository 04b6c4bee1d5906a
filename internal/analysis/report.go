package analysis

import "time"

// ReportKind selects one of the fixed report artifacts.
type ReportKind string

const (
	ReportQuick         ReportKind = "quick"
	ReportPersonality   ReportKind = "personality"
	ReportComprehensive ReportKind = "comprehensive"
)

// QuickReport is the instantaneous analysis of a user's latest activity.
type QuickReport struct {
	Empty bool // true when the user has no scored messages yet

	TotalMessages   int
	Mood            MoodBand
	Sentiment       float64
	Confidence      float64 // |sentiment|, emotional intensity
	StressLevel     float64
	StressBand      StressBand
	Recommendations []string
}

// PersonalityReport carries the trait profile for presentation.
type PersonalityReport struct {
	Empty bool // true when no trait keyword has ever matched

	Scores        map[Trait]float64
	DominantTrait Trait
}

// DailySummary is one day's line in the comprehensive report.
type DailySummary struct {
	Date         time.Time
	MessageCount int
	AvgSentiment float64
	Mood         MoodBand
}

// ComprehensiveReport aggregates profile, rollups, activity, and trend for
// a user.
type ComprehensiveReport struct {
	Empty bool // true when the user has no history at all

	TotalMessages   int
	SkippedMessages int
	DaysActive      int
	AvgSentiment    float64
	AvgWordCount    float64

	Week            []DailySummary
	Trend           TrendSummary
	Personality     PersonalityReport
	Activity        ActivitySummary
	Recommendations []string
}

// DayPeriod buckets an hour of day for activity patterns.
type DayPeriod string

const (
	PeriodMorning   DayPeriod = "morning"
	PeriodAfternoon DayPeriod = "afternoon"
	PeriodEvening   DayPeriod = "evening"
	PeriodNight     DayPeriod = "night"
)

// DayPeriods lists the periods in presentation order.
var DayPeriods = []DayPeriod{PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight}

// PeriodOf maps an hour of day (0-23) to its period. Morning covers 6-12,
// afternoon 13-18, evening 19-22, night the remaining hours.
func PeriodOf(hour int) DayPeriod {
	switch {
	case hour >= 6 && hour <= 12:
		return PeriodMorning
	case hour >= 13 && hour <= 18:
		return PeriodAfternoon
	case hour >= 19 && hour <= 22:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// ActivitySummary is the time-of-day distribution of a user's messages.
type ActivitySummary struct {
	Total      int
	Counts     map[DayPeriod]int
	MostActive DayPeriod
}

// ComposeActivity buckets per-hour message counts into day periods. The
// most active period wins by count, ties by presentation order.
func ComposeActivity(hourCounts map[int]int) ActivitySummary {
	summary := ActivitySummary{Counts: make(map[DayPeriod]int, len(DayPeriods))}
	for hour, count := range hourCounts {
		summary.Counts[PeriodOf(hour)] += count
		summary.Total += count
	}

	best := -1
	for _, period := range DayPeriods {
		if count := summary.Counts[period]; count > best {
			summary.MostActive = period
			best = count
		}
	}
	return summary
}

// StatsReport carries a user's usage statistics for presentation.
type StatsReport struct {
	Empty bool

	TotalMessages   int
	SkippedMessages int
	DaysActive      int
	MessagesPerDay  float64
	AvgSentiment    float64
	Mood            MoodBand
	FirstSeen       time.Time
	LastSeen        time.Time
}

// StressBand is the coarse classification of a stress level.
type StressBand string

const (
	StressLow      StressBand = "low"
	StressModerate StressBand = "moderate"
	StressHigh     StressBand = "high"
)

// ClassifyStress maps a 0-10 stress level to its band.
func ClassifyStress(level float64) StressBand {
	switch {
	case level >= 7:
		return StressHigh
	case level >= 4:
		return StressModerate
	default:
		return StressLow
	}
}

// Composer assembles report artifacts from already-computed component
// outputs. It holds no state and recomputes nothing the other components
// have computed.
type Composer struct{}

// ComposeQuick builds the quick analysis from the latest message score and
// the running message total.
func (Composer) ComposeQuick(totalMessages int, latest MessageScore) QuickReport {
	if totalMessages == 0 {
		return QuickReport{Empty: true, Mood: MoodNeutral, StressBand: StressLow}
	}

	confidence := latest.Sentiment
	if confidence < 0 {
		confidence = -confidence
	}

	return QuickReport{
		TotalMessages:   totalMessages,
		Mood:            latest.Band(),
		Sentiment:       latest.Sentiment,
		Confidence:      confidence,
		StressLevel:     latest.Stress,
		StressBand:      ClassifyStress(latest.Stress),
		Recommendations: quickRecommendations(latest),
	}
}

// quickRecommendations picks the mood insight lines for the latest score.
func quickRecommendations(latest MessageScore) []string {
	var recs []string
	switch {
	case latest.Sentiment < -0.3:
		recs = append(recs,
			"Consider talking to someone you trust",
			"Try some relaxation techniques")
	case latest.Sentiment > 0.3:
		recs = append(recs,
			"Great positive energy! Keep it up!",
			"You seem to be in a good mental space")
	default:
		recs = append(recs,
			"Your mood seems balanced",
			"Continue monitoring your emotional patterns")
	}

	if latest.Stress > 5 {
		recs = append(recs, "High stress detected - take breaks when possible")
	}
	return recs
}

// reportRecommendations picks the comprehensive-report suggestions from the
// window's average sentiment and message length.
func reportRecommendations(avgSentiment, avgWordCount float64) []string {
	var recs []string
	switch {
	case avgSentiment < -0.2:
		recs = append(recs,
			"Consider practicing gratitude or positive self-talk",
			"Engage in activities that boost your mood")
	case avgSentiment > 0.2:
		recs = append(recs,
			"Great positive outlook! Keep it up!",
			"Share your positivity with others")
	}

	if avgWordCount < 5 {
		recs = append(recs, "Try expressing yourself more - longer messages provide better insights")
	}
	return recs
}

// ComposePersonality builds the personality report from trait counts.
func (Composer) ComposePersonality(counts TraitCounts) PersonalityReport {
	scores := counts.Scores()

	any := false
	for _, score := range scores {
		if score > 0 {
			any = true
			break
		}
	}

	return PersonalityReport{
		Empty:         !any,
		Scores:        scores,
		DominantTrait: counts.Dominant(),
	}
}

// ComposeStats builds the usage statistics from the profile and the user's
// full set of daily records, ordered oldest to newest.
func (Composer) ComposeStats(profile *Profile, records []DailyRecord) StatsReport {
	if profile == nil || (profile.TotalMessages == 0 && len(records) == 0) {
		return StatsReport{Empty: true, Mood: MoodNeutral}
	}

	report := StatsReport{
		TotalMessages:   profile.TotalMessages,
		SkippedMessages: profile.SkippedMessages,
		DaysActive:      len(records),
		Mood:            MoodNeutral,
	}

	if len(records) > 0 {
		report.FirstSeen = records[0].Date
		report.LastSeen = records[len(records)-1].Date
		report.MessagesPerDay = float64(profile.TotalMessages) / float64(len(records))

		sum := 0.0
		for _, record := range records {
			sum += record.AvgSentiment()
		}
		report.AvgSentiment = sum / float64(len(records))
		report.Mood = ClassifyMood(report.AvgSentiment)
	}

	return report
}

// ComposeComprehensive builds the full report from profile totals, the
// recent daily records (ordered oldest to newest), the trend summary over
// them, the personality report, and the per-hour activity counts.
func (Composer) ComposeComprehensive(
	totalMessages, skippedMessages int,
	records []DailyRecord,
	trend TrendSummary,
	personality PersonalityReport,
	hourCounts map[int]int,
) ComprehensiveReport {
	report := ComprehensiveReport{
		TotalMessages:   totalMessages,
		SkippedMessages: skippedMessages,
		DaysActive:      len(records),
		Trend:           trend,
		Personality:     personality,
		Activity:        ComposeActivity(hourCounts),
	}

	if totalMessages == 0 && len(records) == 0 {
		report.Empty = true
		return report
	}

	var sentimentSum, wordSum float64
	var dayCount int
	for _, record := range records {
		avg := record.AvgSentiment()
		sentimentSum += avg
		wordSum += record.AvgWordCount()
		dayCount++

		report.Week = append(report.Week, DailySummary{
			Date:         record.Date,
			MessageCount: record.MessageCount,
			AvgSentiment: avg,
			Mood:         ClassifyMood(avg),
		})
	}
	if dayCount > 0 {
		report.AvgSentiment = sentimentSum / float64(dayCount)
		report.AvgWordCount = wordSum / float64(dayCount)
	}
	report.Recommendations = reportRecommendations(report.AvgSentiment, report.AvgWordCount)

	return report
}
