package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/introbot/introspect/internal/analysis"
)

// Presentation of the engine's structured reports as Telegram text. No
// numeric logic lives here; everything is already computed by the engine.

func moodLabel(band analysis.MoodBand) string {
	switch band {
	case analysis.MoodPositive:
		return "Positive 😊"
	case analysis.MoodNegative:
		return "Negative 😟"
	default:
		return "Neutral 😐"
	}
}

func moodEmoji(band analysis.MoodBand) string {
	switch band {
	case analysis.MoodPositive:
		return "😊"
	case analysis.MoodNegative:
		return "😟"
	default:
		return "😐"
	}
}

func stressLabel(band analysis.StressBand) string {
	switch band {
	case analysis.StressHigh:
		return "High Stress 🔴"
	case analysis.StressModerate:
		return "Moderate Stress 🟡"
	default:
		return "Low Stress 🟢"
	}
}

func trendLabel(direction analysis.TrendDirection) string {
	switch direction {
	case analysis.TrendIncreasing:
		return "Increasing"
	case analysis.TrendDecreasing:
		return "Decreasing"
	case analysis.TrendFlat:
		return "Flat"
	default:
		return "Not enough data yet"
	}
}

func periodLabel(period analysis.DayPeriod) string {
	switch period {
	case analysis.PeriodMorning:
		return "Morning"
	case analysis.PeriodAfternoon:
		return "Afternoon"
	case analysis.PeriodEvening:
		return "Evening"
	default:
		return "Night"
	}
}

// traitBar renders a ten-segment bar for a 0-100 score.
func traitBar(score float64) string {
	filled := int(score) / 10
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func formatQuick(report analysis.QuickReport) string {
	var sb strings.Builder
	sb.WriteString("🎯 MOOD ANALYSIS\n\n")
	fmt.Fprintf(&sb, "Mood: %s\n", moodLabel(report.Mood))
	fmt.Fprintf(&sb, "Stress: %s\n", stressLabel(report.StressBand))
	fmt.Fprintf(&sb, "Emotional intensity: %.0f%%\n", report.Confidence*100)
	fmt.Fprintf(&sb, "Messages analyzed: %d\n", report.TotalMessages)

	if len(report.Recommendations) > 0 {
		sb.WriteString("\n💡 Insights:\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
	}
	return sb.String()
}

func formatQuickFeedback(result analysis.IngestResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Quick Analysis (Message #%d):\n", result.TotalMessages)
	fmt.Fprintf(&sb, "• Mood: %s\n", moodLabel(result.Quick.Mood))
	fmt.Fprintf(&sb, "• Stress: %s\n", stressLabel(result.Quick.StressBand))
	fmt.Fprintf(&sb, "• Confidence: %.0f%%\n\n", result.Quick.Confidence*100)
	sb.WriteString("Type /mood for detailed analysis!")
	return sb.String()
}

func formatPersonality(report analysis.PersonalityReport) string {
	var sb strings.Builder
	sb.WriteString("🧠 PERSONALITY ANALYSIS\n\n")

	for _, trait := range analysis.Traits {
		score := report.Scores[trait]
		fmt.Fprintf(&sb, "%s:\n%s %.0f%%\n\n", analysis.TraitDescriptions[trait], traitBar(score), score)
	}

	fmt.Fprintf(&sb, "🎯 Dominant Trait: %s\n", analysis.TraitDescriptions[report.DominantTrait])
	return sb.String()
}

func formatComprehensive(report analysis.ComprehensiveReport) string {
	var sb strings.Builder
	sb.WriteString("📋 COMPREHENSIVE BEHAVIOR REPORT\n\n")

	sb.WriteString("👤 Profile:\n")
	fmt.Fprintf(&sb, "• Messages analyzed: %d\n", report.TotalMessages)
	if report.SkippedMessages > 0 {
		fmt.Fprintf(&sb, "• Messages skipped (unscorable): %d\n", report.SkippedMessages)
	}
	fmt.Fprintf(&sb, "• Average sentiment: %.2f\n", report.AvgSentiment)
	fmt.Fprintf(&sb, "• Average words per message: %.1f\n", report.AvgWordCount)

	if len(report.Week) > 0 {
		sb.WriteString("\n📊 Weekly summary:\n")
		for _, day := range report.Week {
			fmt.Fprintf(&sb, "• %s: %d messages, Mood %s (%.2f)\n",
				day.Date.Format(time.DateOnly), day.MessageCount, moodEmoji(day.Mood), day.AvgSentiment)
		}
	}

	sb.WriteString("\n📈 Trends:\n")
	fmt.Fprintf(&sb, "• Mood trend: %s\n", trendLabel(report.Trend.MoodDirection))
	fmt.Fprintf(&sb, "• Stress trajectory: %s\n", trendLabel(report.Trend.StressTrajectory))
	fmt.Fprintf(&sb, "• Sentiment variance: %.3f\n", report.Trend.SentimentVariance)

	if !report.Personality.Empty {
		sb.WriteString("\n🧠 Personality insights:\n")
		for _, trait := range analysis.Traits {
			if score := report.Personality.Scores[trait]; score > 50 {
				fmt.Fprintf(&sb, "• %s: %.0f%% (above average)\n", analysis.TraitDescriptions[trait], score)
			}
		}
		fmt.Fprintf(&sb, "• Dominant trait: %s\n", analysis.TraitDescriptions[report.Personality.DominantTrait])
	}

	if report.Activity.Total > 0 {
		sb.WriteString("\n⏰ Activity patterns:\n")
		fmt.Fprintf(&sb, "• Most active time: %s\n", periodLabel(report.Activity.MostActive))
		for _, period := range analysis.DayPeriods {
			count := report.Activity.Counts[period]
			if count == 0 {
				continue
			}
			percentage := float64(count) / float64(report.Activity.Total) * 100
			fmt.Fprintf(&sb, "• %s: %d messages (%.1f%%)\n", periodLabel(period), count, percentage)
		}
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("\n💡 Recommendations:\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
	}

	return sb.String()
}

func formatStats(report analysis.StatsReport) string {
	var sb strings.Builder
	sb.WriteString("📊 YOUR STATISTICS\n\n")

	sb.WriteString("📈 Usage:\n")
	fmt.Fprintf(&sb, "• Total messages: %d\n", report.TotalMessages)
	fmt.Fprintf(&sb, "• Days active: %d\n", report.DaysActive)
	fmt.Fprintf(&sb, "• Messages per day: %.1f\n", report.MessagesPerDay)

	sb.WriteString("\n😊 Mood:\n")
	fmt.Fprintf(&sb, "• Average sentiment: %.2f\n", report.AvgSentiment)
	fmt.Fprintf(&sb, "• Mood category: %s\n", moodLabel(report.Mood))

	if !report.LastSeen.IsZero() {
		sb.WriteString("\n⏰ Activity:\n")
		fmt.Fprintf(&sb, "• First day: %s\n", report.FirstSeen.Format(time.DateOnly))
		fmt.Fprintf(&sb, "• Last day: %s\n", report.LastSeen.Format(time.DateOnly))
	}

	sb.WriteString("\n💫 Keep chatting for more accurate insights!")
	return sb.String()
}
