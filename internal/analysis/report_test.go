package analysis_test

import (
	"testing"

	"github.com/introbot/introspect/internal/analysis"
)

func TestClassifyStress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    float64
		expected analysis.StressBand
	}{
		{name: "Zero", level: 0.0, expected: analysis.StressLow},
		{name: "Just below moderate", level: 3.9, expected: analysis.StressLow},
		{name: "Moderate boundary", level: 4.0, expected: analysis.StressModerate},
		{name: "Just below high", level: 6.9, expected: analysis.StressModerate},
		{name: "High boundary", level: 7.0, expected: analysis.StressHigh},
		{name: "Maximum", level: 10.0, expected: analysis.StressHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := analysis.ClassifyStress(tt.level); got != tt.expected {
				t.Errorf("ClassifyStress(%v) = %q, want %q", tt.level, got, tt.expected)
			}
		})
	}
}

func TestComposeQuick(t *testing.T) {
	t.Parallel()

	var composer analysis.Composer

	t.Run("No messages yields empty report", func(t *testing.T) {
		t.Parallel()

		report := composer.ComposeQuick(0, analysis.MessageScore{})
		if !report.Empty {
			t.Errorf("Empty = false, want true")
		}
		if report.Mood != analysis.MoodNeutral {
			t.Errorf("Mood = %q, want %q", report.Mood, analysis.MoodNeutral)
		}
	})

	t.Run("Confidence is absolute sentiment", func(t *testing.T) {
		t.Parallel()

		report := composer.ComposeQuick(3, analysis.MessageScore{Sentiment: -0.75, WordCount: 5, Stress: 7.5})
		if report.Empty {
			t.Fatal("Empty = true, want false")
		}
		if report.Confidence != 0.75 {
			t.Errorf("Confidence = %v, want 0.75", report.Confidence)
		}
		if report.Mood != analysis.MoodNegative {
			t.Errorf("Mood = %q, want %q", report.Mood, analysis.MoodNegative)
		}
		if report.StressBand != analysis.StressHigh {
			t.Errorf("StressBand = %q, want %q", report.StressBand, analysis.StressHigh)
		}
	})
}

func TestComposeStats(t *testing.T) {
	t.Parallel()

	var composer analysis.Composer

	t.Run("Nil profile yields empty report", func(t *testing.T) {
		t.Parallel()

		report := composer.ComposeStats(nil, nil)
		if !report.Empty {
			t.Errorf("Empty = false, want true")
		}
	})

	t.Run("Averages span the user's active days", func(t *testing.T) {
		t.Parallel()

		profile := &analysis.Profile{UserID: 1, TotalMessages: 10}
		records := []analysis.DailyRecord{
			{Date: day(1), MessageCount: 4, SentimentSum: 1.0},
			{Date: day(2), MessageCount: 6, SentimentSum: 3.0},
		}

		report := composer.ComposeStats(profile, records)
		if report.Empty {
			t.Fatal("Empty = true, want false")
		}
		if report.DaysActive != 2 {
			t.Errorf("DaysActive = %d, want 2", report.DaysActive)
		}
		if report.MessagesPerDay != 5.0 {
			t.Errorf("MessagesPerDay = %v, want 5.0", report.MessagesPerDay)
		}
		// (1.0/4 + 3.0/6) / 2 = (0.25 + 0.5) / 2
		if report.AvgSentiment != 0.375 {
			t.Errorf("AvgSentiment = %v, want 0.375", report.AvgSentiment)
		}
		if report.Mood != analysis.MoodPositive {
			t.Errorf("Mood = %q, want %q", report.Mood, analysis.MoodPositive)
		}
		if !report.FirstSeen.Equal(day(1)) || !report.LastSeen.Equal(day(2)) {
			t.Errorf("FirstSeen/LastSeen = %v/%v, want %v/%v", report.FirstSeen, report.LastSeen, day(1), day(2))
		}
	})
}

func TestComposeComprehensive(t *testing.T) {
	t.Parallel()

	var composer analysis.Composer

	t.Run("No history yields empty report", func(t *testing.T) {
		t.Parallel()

		report := composer.ComposeComprehensive(0, 0, nil, analysis.AnalyzeTrend(nil, 0), analysis.PersonalityReport{Empty: true}, nil)
		if !report.Empty {
			t.Errorf("Empty = false, want true")
		}
		if report.Trend.MoodDirection != analysis.TrendInsufficientData {
			t.Errorf("Trend.MoodDirection = %q, want %q", report.Trend.MoodDirection, analysis.TrendInsufficientData)
		}
	})

	t.Run("Week summary mirrors daily records", func(t *testing.T) {
		t.Parallel()

		records := []analysis.DailyRecord{
			{Date: day(1), MessageCount: 2, SentimentSum: 1.0, WordCountSum: 10},
			{Date: day(2), MessageCount: 2, SentimentSum: -1.0, WordCountSum: 6},
		}

		report := composer.ComposeComprehensive(4, 1, records, analysis.AnalyzeTrend(records, 0), analysis.PersonalityReport{Empty: true}, nil)
		if report.Empty {
			t.Fatal("Empty = true, want false")
		}
		if len(report.Week) != 2 {
			t.Fatalf("len(Week) = %d, want 2", len(report.Week))
		}
		if report.Week[0].Mood != analysis.MoodPositive || report.Week[1].Mood != analysis.MoodNegative {
			t.Errorf("Week moods = %q, %q, want positive then negative", report.Week[0].Mood, report.Week[1].Mood)
		}
		if report.SkippedMessages != 1 {
			t.Errorf("SkippedMessages = %d, want 1", report.SkippedMessages)
		}
		// Day averages are 0.5 and -0.5, so they cancel out.
		if report.AvgSentiment != 0.0 {
			t.Errorf("AvgSentiment = %v, want 0.0", report.AvgSentiment)
		}
		if report.AvgWordCount != 4.0 {
			t.Errorf("AvgWordCount = %v, want 4.0", report.AvgWordCount)
		}
	})
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}

func TestPeriodOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hour     int
		expected analysis.DayPeriod
	}{
		{hour: 0, expected: analysis.PeriodNight},
		{hour: 5, expected: analysis.PeriodNight},
		{hour: 6, expected: analysis.PeriodMorning},
		{hour: 12, expected: analysis.PeriodMorning},
		{hour: 13, expected: analysis.PeriodAfternoon},
		{hour: 18, expected: analysis.PeriodAfternoon},
		{hour: 19, expected: analysis.PeriodEvening},
		{hour: 22, expected: analysis.PeriodEvening},
		{hour: 23, expected: analysis.PeriodNight},
	}

	for _, tt := range tests {
		if got := analysis.PeriodOf(tt.hour); got != tt.expected {
			t.Errorf("PeriodOf(%d) = %q, want %q", tt.hour, got, tt.expected)
		}
	}
}

func TestComposeActivity(t *testing.T) {
	t.Parallel()

	t.Run("Buckets hours into periods", func(t *testing.T) {
		t.Parallel()

		summary := analysis.ComposeActivity(map[int]int{9: 2, 11: 1, 14: 2, 23: 1})
		if summary.Total != 6 {
			t.Errorf("Total = %d, want 6", summary.Total)
		}
		if summary.Counts[analysis.PeriodMorning] != 3 {
			t.Errorf("morning = %d, want 3", summary.Counts[analysis.PeriodMorning])
		}
		if summary.Counts[analysis.PeriodAfternoon] != 2 {
			t.Errorf("afternoon = %d, want 2", summary.Counts[analysis.PeriodAfternoon])
		}
		if summary.MostActive != analysis.PeriodMorning {
			t.Errorf("MostActive = %q, want %q", summary.MostActive, analysis.PeriodMorning)
		}
	})

	t.Run("Ties resolve to the earlier period", func(t *testing.T) {
		t.Parallel()

		summary := analysis.ComposeActivity(map[int]int{10: 2, 20: 2})
		if summary.MostActive != analysis.PeriodMorning {
			t.Errorf("MostActive = %q, want %q", summary.MostActive, analysis.PeriodMorning)
		}
	})

	t.Run("No messages", func(t *testing.T) {
		t.Parallel()

		summary := analysis.ComposeActivity(nil)
		if summary.Total != 0 {
			t.Errorf("Total = %d, want 0", summary.Total)
		}
	})
}

func TestQuickReportRecommendations(t *testing.T) {
	t.Parallel()

	var composer analysis.Composer

	tests := []struct {
		name     string
		score    analysis.MessageScore
		expected string
	}{
		{
			name:     "Low mood suggests reaching out",
			score:    analysis.MessageScore{Sentiment: -0.5, WordCount: 4},
			expected: "Consider talking to someone you trust",
		},
		{
			name:     "High mood is encouraged",
			score:    analysis.MessageScore{Sentiment: 0.5, WordCount: 4},
			expected: "Great positive energy! Keep it up!",
		},
		{
			name:     "Neutral mood",
			score:    analysis.MessageScore{Sentiment: 0.0, WordCount: 4},
			expected: "Your mood seems balanced",
		},
		{
			name:     "High stress adds a break reminder",
			score:    analysis.MessageScore{Sentiment: 0.0, WordCount: 4, Stress: 7.5},
			expected: "High stress detected - take breaks when possible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := composer.ComposeQuick(5, tt.score)
			if !containsLine(report.Recommendations, tt.expected) {
				t.Errorf("Recommendations = %q, want to contain %q", report.Recommendations, tt.expected)
			}
		})
	}
}

func TestComprehensiveRecommendations(t *testing.T) {
	t.Parallel()

	var composer analysis.Composer
	trend := analysis.AnalyzeTrend(nil, 0)
	personality := analysis.PersonalityReport{Empty: true}

	t.Run("Negative window suggests mood boosters", func(t *testing.T) {
		t.Parallel()

		records := []analysis.DailyRecord{
			{Date: day(1), MessageCount: 2, SentimentSum: -1.0, WordCountSum: 20},
		}
		report := composer.ComposeComprehensive(2, 0, records, trend, personality, nil)
		if !containsLine(report.Recommendations, "Engage in activities that boost your mood") {
			t.Errorf("Recommendations = %q, want mood boosters", report.Recommendations)
		}
	})

	t.Run("Positive window is encouraged", func(t *testing.T) {
		t.Parallel()

		records := []analysis.DailyRecord{
			{Date: day(1), MessageCount: 2, SentimentSum: 1.0, WordCountSum: 20},
		}
		report := composer.ComposeComprehensive(2, 0, records, trend, personality, nil)
		if !containsLine(report.Recommendations, "Share your positivity with others") {
			t.Errorf("Recommendations = %q, want positivity encouragement", report.Recommendations)
		}
	})

	t.Run("Short messages prompt for more detail", func(t *testing.T) {
		t.Parallel()

		records := []analysis.DailyRecord{
			{Date: day(1), MessageCount: 2, SentimentSum: 0.0, WordCountSum: 4},
		}
		report := composer.ComposeComprehensive(2, 0, records, trend, personality, nil)
		if !containsLine(report.Recommendations, "Try expressing yourself more - longer messages provide better insights") {
			t.Errorf("Recommendations = %q, want a message-length prompt", report.Recommendations)
		}
	})

	t.Run("Empty report carries no recommendations", func(t *testing.T) {
		t.Parallel()

		report := composer.ComposeComprehensive(0, 0, nil, trend, personality, nil)
		if len(report.Recommendations) != 0 {
			t.Errorf("Recommendations = %q, want none", report.Recommendations)
		}
	})
}
