package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/introbot/introspect/internal/analysis"
)

// profileRow is the user_profiles table shape. Trait hit counters are
// stored as individual columns so they can be inspected with plain SQL.
type profileRow struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	UserID           int64     `db:"user_id"`
	RegistrationDate time.Time `db:"registration_date"`
	TotalMessages    int       `db:"total_messages"`
	SkippedMessages  int       `db:"skipped_messages"`

	ExtraversionHits      int `db:"extraversion_hits"`
	OpennessHits          int `db:"openness_hits"`
	ConscientiousnessHits int `db:"conscientiousness_hits"`
	AgreeablenessHits     int `db:"agreeableness_hits"`
	NeuroticismHits       int `db:"neuroticism_hits"`
}

func (r *profileRow) toProfile() *analysis.Profile {
	return &analysis.Profile{
		UserID:           r.UserID,
		RegistrationDate: r.RegistrationDate,
		TotalMessages:    r.TotalMessages,
		SkippedMessages:  r.SkippedMessages,
		Counts: analysis.TraitCounts{
			analysis.TraitExtraversion:      r.ExtraversionHits,
			analysis.TraitOpenness:          r.OpennessHits,
			analysis.TraitConscientiousness: r.ConscientiousnessHits,
			analysis.TraitAgreeableness:     r.AgreeablenessHits,
			analysis.TraitNeuroticism:       r.NeuroticismHits,
		},
	}
}

func profileToRow(p *analysis.Profile, now time.Time) *profileRow {
	return &profileRow{
		UpdatedAt:             now,
		UserID:                p.UserID,
		RegistrationDate:      p.RegistrationDate,
		TotalMessages:         p.TotalMessages,
		SkippedMessages:       p.SkippedMessages,
		ExtraversionHits:      p.Counts[analysis.TraitExtraversion],
		OpennessHits:          p.Counts[analysis.TraitOpenness],
		ConscientiousnessHits: p.Counts[analysis.TraitConscientiousness],
		AgreeablenessHits:     p.Counts[analysis.TraitAgreeableness],
		NeuroticismHits:       p.Counts[analysis.TraitNeuroticism],
	}
}

// messageRow is the append-only messages table shape.
type messageRow struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	UserID    int64     `db:"user_id"`
	Content   string    `db:"content"`
	Timestamp time.Time `db:"timestamp"`
	Sentiment float64   `db:"sentiment"`
	WordCount int       `db:"word_count"`
}

func (r *messageRow) toMessage() analysis.Message {
	return analysis.Message{
		UserID:    r.UserID,
		Text:      r.Content,
		Timestamp: r.Timestamp,
		Sentiment: r.Sentiment,
		WordCount: r.WordCount,
	}
}

// dailyRow is the daily_analytics table shape. The trait snapshot is a
// serialized JSON map of trait name to score.
type dailyRow struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	UserID        int64     `db:"user_id"`
	Date          time.Time `db:"date"`
	MessageCount  int       `db:"message_count"`
	SentimentSum  float64   `db:"sentiment_sum"`
	WordCountSum  int       `db:"word_count_sum"`
	StressSum     float64   `db:"stress_sum"`
	TraitSnapshot string    `db:"trait_snapshot"`
}

func (r *dailyRow) toRecord() (analysis.DailyRecord, error) {
	record := analysis.DailyRecord{
		UserID:       r.UserID,
		Date:         analysis.DateOf(r.Date),
		MessageCount: r.MessageCount,
		SentimentSum: r.SentimentSum,
		WordCountSum: r.WordCountSum,
		StressSum:    r.StressSum,
	}

	if r.TraitSnapshot != "" {
		snapshot := make(map[analysis.Trait]float64)
		if err := json.Unmarshal([]byte(r.TraitSnapshot), &snapshot); err != nil {
			return record, fmt.Errorf("failed to decode trait snapshot for user %d on %s: %w",
				r.UserID, r.Date.Format(time.DateOnly), err)
		}
		record.TraitSnapshot = snapshot
	}

	return record, nil
}

func recordToRow(record analysis.DailyRecord, now time.Time) (*dailyRow, error) {
	snapshot := "{}"
	if record.TraitSnapshot != nil {
		encoded, err := json.Marshal(record.TraitSnapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to encode trait snapshot for user %d: %w", record.UserID, err)
		}
		snapshot = string(encoded)
	}

	return &dailyRow{
		UpdatedAt:     now,
		UserID:        record.UserID,
		Date:          record.Date,
		MessageCount:  record.MessageCount,
		SentimentSum:  record.SentimentSum,
		WordCountSum:  record.WordCountSum,
		StressSum:     record.StressSum,
		TraitSnapshot: snapshot,
	}, nil
}
