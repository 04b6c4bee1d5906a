package analysis

import (
	"fmt"
	"sync"
	"time"
)

// DailyRecord is the per-(user, calendar day) aggregate of message
// statistics. Sums are accumulated incrementally; averages are always
// derived, never stored, so repeated updates cannot drift.
type DailyRecord struct {
	UserID       int64
	Date         time.Time // UTC midnight of the record's calendar day
	MessageCount int
	SentimentSum float64
	WordCountSum int
	StressSum    float64

	// TraitSnapshot is the user's trait scores as of the last update to
	// this record.
	TraitSnapshot map[Trait]float64
}

// AvgSentiment returns sentiment_sum / message_count, or exactly 0.0 for an
// empty record. Never divides by zero.
func (r DailyRecord) AvgSentiment() float64 {
	if r.MessageCount == 0 {
		return 0.0
	}
	return r.SentimentSum / float64(r.MessageCount)
}

// AvgStress returns stress_sum / message_count, or 0.0 for an empty record.
func (r DailyRecord) AvgStress() float64 {
	if r.MessageCount == 0 {
		return 0.0
	}
	return r.StressSum / float64(r.MessageCount)
}

// AvgWordCount returns word_count_sum / message_count, or 0.0 for an empty record.
func (r DailyRecord) AvgWordCount() float64 {
	if r.MessageCount == 0 {
		return 0.0
	}
	return float64(r.WordCountSum) / float64(r.MessageCount)
}

// clone returns an independent copy, so callers cannot mutate the rollup's
// internal state through a returned record.
func (r DailyRecord) clone() DailyRecord {
	out := r
	if r.TraitSnapshot != nil {
		out.TraitSnapshot = make(map[Trait]float64, len(r.TraitSnapshot))
		for trait, score := range r.TraitSnapshot {
			out.TraitSnapshot[trait] = score
		}
	}
	return out
}

// DateOf truncates a timestamp to its UTC calendar day.
func DateOf(ts time.Time) time.Time {
	utc := ts.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// Rollup maintains at most one open daily record per user as a streaming
// accumulator, plus the last finalized day per user so that late messages
// for a closed day are rejected even when no record is open. It never
// recomputes from raw history. Safe for concurrent use; records for
// different users are independent.
type Rollup struct {
	mu     sync.Mutex
	open   map[int64]*DailyRecord
	closed map[int64]time.Time
}

// NewRollup returns an empty rollup accumulator.
func NewRollup() *Rollup {
	return &Rollup{
		open:   make(map[int64]*DailyRecord),
		closed: make(map[int64]time.Time),
	}
}

// Restore seeds the open record for a user, typically from persisted state
// at startup. A nil record clears the user's open slot.
func (r *Rollup) Restore(userID int64, record *DailyRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record == nil {
		delete(r.open, userID)
		return
	}
	restored := record.clone()
	restored.Date = DateOf(restored.Date)
	r.open[userID] = &restored
}

// MarkClosed records that every day up to and including date is finalized
// for the user, typically from the newest persisted record at startup.
// Ingest for any of those days is rejected from then on.
func (r *Rollup) MarkClosed(userID int64, date time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := DateOf(date)
	if last, ok := r.closed[userID]; ok && !day.After(last) {
		return
	}
	r.closed[userID] = day
}

// Ingest adds one message's signals to the user's record for the day of ts.
//
// If no record is open for the user, one is created with zero sums. If ts
// falls on a later day than the open record, the open record is closed and
// returned so the caller can persist it. Ingest for a day earlier than the
// open record's date is rejected with ErrClosedPeriod; callers route
// messages by their own timestamp, not wall-clock now.
func (r *Rollup) Ingest(userID int64, ts time.Time, score MessageScore, snapshot map[Trait]float64) (closed *DailyRecord, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := DateOf(ts)

	if last, ok := r.closed[userID]; ok && !day.After(last) {
		return nil, fmt.Errorf("%w: user %d, day %s is already finalized (last closed day %s)",
			ErrClosedPeriod, userID, day.Format(time.DateOnly), last.Format(time.DateOnly))
	}

	record, ok := r.open[userID]
	if ok {
		switch {
		case day.Before(record.Date):
			return nil, fmt.Errorf("%w: user %d, day %s is before open day %s",
				ErrClosedPeriod, userID, day.Format(time.DateOnly), record.Date.Format(time.DateOnly))
		case day.After(record.Date):
			rolled := record.clone()
			closed = &rolled
			r.closed[userID] = record.Date
			record = nil
		}
	}

	if record == nil {
		record = &DailyRecord{UserID: userID, Date: day}
		r.open[userID] = record
	}

	record.MessageCount++
	record.SentimentSum += score.Sentiment
	record.WordCountSum += score.WordCount
	record.StressSum += score.Stress
	record.TraitSnapshot = snapshot

	return closed, nil
}

// Open returns a snapshot of the user's open record, or nil if none exists.
func (r *Rollup) Open(userID int64) *DailyRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.open[userID]
	if !ok {
		return nil
	}
	snapshot := record.clone()
	return &snapshot
}

// Finalize returns a read-only snapshot of the user's record for the given
// day. It is a pure read: calling it twice on the same closed day returns
// identical records. Returns nil if the day does not match the open record.
func (r *Rollup) Finalize(userID int64, date time.Time) *DailyRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.open[userID]
	if !ok || !DateOf(date).Equal(record.Date) {
		return nil
	}
	snapshot := record.clone()
	return &snapshot
}

// Drop discards the user's open record and closed-day marker (privacy erase).
func (r *Rollup) Drop(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.open, userID)
	delete(r.closed, userID)
}

// OpenRecords returns snapshots of every open record, for periodic flushing.
func (r *Rollup) OpenRecords() []DailyRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]DailyRecord, 0, len(r.open))
	for _, record := range r.open {
		records = append(records, record.clone())
	}
	return records
}
