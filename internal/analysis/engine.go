package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Profile is a user's cumulative behavioral state. One per user; counts only
// ever increase, and the profile is deleted only by an explicit erase.
type Profile struct {
	UserID           int64
	RegistrationDate time.Time
	TotalMessages    int
	SkippedMessages  int
	Counts           TraitCounts
}

func (p *Profile) clone() *Profile {
	out := *p
	out.Counts = p.Counts.Clone()
	return &out
}

// Message is the immutable ingestion fact appended to the message log.
type Message struct {
	UserID    int64
	Text      string
	Timestamp time.Time
	Sentiment float64
	WordCount int
}

// Store is the persistence collaborator consumed by the engine. A missing
// profile is reported as (nil, nil), which the engine treats as a new user.
type Store interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	SaveProfile(ctx context.Context, profile *Profile) error

	AppendMessage(ctx context.Context, message Message) error
	RecentMessages(ctx context.Context, userID int64, limit int) ([]Message, error)

	UpsertDailyRecord(ctx context.Context, record DailyRecord) error
	// DailyRecords returns the user's records with from <= date <= to,
	// ordered oldest to newest.
	DailyRecords(ctx context.Context, userID int64, from, to time.Time) ([]DailyRecord, error)
	// LatestDailyRecord returns the user's newest record, or (nil, nil)
	// when the user has none.
	LatestDailyRecord(ctx context.Context, userID int64) (*DailyRecord, error)

	// MessageCountByHour returns how many of the user's messages fall in
	// each hour of day (0-23, UTC), keyed by hour.
	MessageCountByHour(ctx context.Context, userID int64) (map[int]int, error)

	DeleteUserData(ctx context.Context, userID int64) error
}

// IngestResult reports the outcome of scoring and accumulating one message.
type IngestResult struct {
	Score         MessageScore
	TotalMessages int
	Quick         QuickReport
}

// Engine converts a per-user stream of timestamped text messages into an
// evolving profile, daily rollups, and on-demand reports. All mutation of a
// given user's state is serialized through that user's lock; different users
// proceed in parallel with no shared mutable state beyond the keyed maps.
type Engine struct {
	log      *slog.Logger
	store    Store
	scorer   *Scorer
	rollup   *Rollup
	composer Composer

	mu    sync.Mutex
	users map[int64]*userState

	// pendingMu guards closed daily records whose upsert failed; Flush
	// drains them so a finalized day is never lost to a transient outage.
	pendingMu sync.Mutex
	pending   []DailyRecord
}

// userState is a user's in-memory slot. Its mutex serializes every
// read-modify-write of the profile and the user's open daily record.
type userState struct {
	mu        sync.Mutex
	loaded    bool
	profile   *Profile
	lastScore *MessageScore
}

// NewEngine creates an engine using the given store and scorer.
func NewEngine(log *slog.Logger, store Store, scorer *Scorer) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		log:    log.With("component", "engine"),
		store:  store,
		scorer: scorer,
		rollup: NewRollup(),
		users:  make(map[int64]*userState),
	}
}

func (e *Engine) state(userID int64) *userState {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.users[userID]
	if !ok {
		st = &userState{}
		e.users[userID] = st
	}
	return st
}

// ensureLoaded populates the user slot from the store on first access.
// Caller must hold st.mu. An absent profile initializes zero-valued state
// with the registration date set to now.
func (e *Engine) ensureLoaded(ctx context.Context, userID int64, st *userState) error {
	if st.loaded {
		return nil
	}

	profile, err := e.store.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: load profile for user %d: %w", ErrPersistence, userID, err)
	}
	if profile == nil {
		profile = &Profile{
			UserID:           userID,
			RegistrationDate: time.Now().UTC(),
			Counts:           NewTraitCounts(),
		}
	} else if profile.Counts == nil {
		profile.Counts = NewTraitCounts()
	}

	// Re-seed the rollup from the newest persisted record. A record for
	// today is still open and resumes accumulating; anything older has
	// already rolled over and is final, so late messages for it (or any
	// earlier day) must be rejected instead of clobbering persisted sums.
	latest, err := e.store.LatestDailyRecord(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: load latest daily record for user %d: %w", ErrPersistence, userID, err)
	}
	if latest != nil {
		if latest.Date.Before(DateOf(time.Now())) {
			e.rollup.MarkClosed(userID, latest.Date)
		} else {
			e.rollup.Restore(userID, latest)
		}
	}

	st.profile = profile
	st.loaded = true
	return nil
}

// Register ensures a profile exists for the user, persisting a zero-valued
// one on first contact.
func (e *Engine) Register(ctx context.Context, userID int64) error {
	st := e.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := e.ensureLoaded(ctx, userID, st); err != nil {
		return err
	}
	if err := e.store.SaveProfile(ctx, st.profile); err != nil {
		return fmt.Errorf("%w: register user %d: %w", ErrPersistence, userID, err)
	}
	return nil
}

// Ingest scores one message and folds it into the user's cumulative state:
// trait counters, the open daily rollup, and the message log.
//
// Unscorable input is excluded from the aggregates, counted as skipped, and
// reported as ErrInvalidInput. A write into an already-closed day is
// rejected with ErrClosedPeriod and mutates nothing. A persistence failure
// is reported as a retryable ErrPersistence; the in-memory aggregates keep
// the message (applied whole, never partially) and are reconciled by the
// next successful flush.
func (e *Engine) Ingest(ctx context.Context, userID int64, text string, ts time.Time) (IngestResult, error) {
	st := e.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := e.ensureLoaded(ctx, userID, st); err != nil {
		return IngestResult{}, err
	}

	if strings.TrimSpace(text) == "" {
		st.profile.SkippedMessages++
		if err := e.store.SaveProfile(ctx, st.profile); err != nil {
			e.log.WarnContext(ctx, "failed to persist skipped-message count",
				"user_id", userID, "error", err)
		}
		return IngestResult{}, fmt.Errorf("%w: user %d", ErrInvalidInput, userID)
	}

	score := e.scorer.Score(text)

	// Apply to the rollup first: a closed-period rejection must leave every
	// counter untouched.
	updatedCounts := st.profile.Counts.Clone()
	updatedCounts.Accumulate(text)

	closed, err := e.rollup.Ingest(userID, ts, score, updatedCounts.Scores())
	if err != nil {
		return IngestResult{}, err
	}

	st.profile.Counts = updatedCounts
	st.profile.TotalMessages++
	st.lastScore = &score

	result := IngestResult{
		Score:         score,
		TotalMessages: st.profile.TotalMessages,
		Quick:         e.composer.ComposeQuick(st.profile.TotalMessages, score),
	}

	// Persist the new state. Failures are retryable; the flush task
	// re-persists the profile and open records later.
	var persistErr error
	if closed != nil {
		if err := e.store.UpsertDailyRecord(ctx, *closed); err != nil {
			// The record left the rollup's open map when the day rolled
			// over; park it for Flush or it is gone for good.
			e.addPending(*closed)
			persistErr = err
		}
	}
	if open := e.rollup.Open(userID); open != nil && persistErr == nil {
		persistErr = e.store.UpsertDailyRecord(ctx, *open)
	}
	if persistErr == nil {
		persistErr = e.store.SaveProfile(ctx, st.profile)
	}
	if persistErr == nil {
		persistErr = e.store.AppendMessage(ctx, Message{
			UserID:    userID,
			Text:      text,
			Timestamp: ts.UTC(),
			Sentiment: score.Sentiment,
			WordCount: score.WordCount,
		})
	}
	if persistErr != nil {
		e.log.ErrorContext(ctx, "failed to persist ingest state",
			"user_id", userID, "error", persistErr)
		return result, fmt.Errorf("%w: ingest for user %d: %w", ErrPersistence, userID, persistErr)
	}

	return result, nil
}

// QuickAnalysis returns the instantaneous mood report for a user, based on
// the most recently scored message. After a restart the latest message is
// recovered from the message log.
func (e *Engine) QuickAnalysis(ctx context.Context, userID int64) (QuickReport, error) {
	st := e.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := e.ensureLoaded(ctx, userID, st); err != nil {
		return QuickReport{}, err
	}

	if st.lastScore == nil {
		messages, err := e.store.RecentMessages(ctx, userID, 1)
		if err != nil {
			return QuickReport{}, fmt.Errorf("%w: recent messages for user %d: %w", ErrPersistence, userID, err)
		}
		if len(messages) > 0 {
			latest := messages[0]
			score := MessageScore{
				Sentiment: latest.Sentiment,
				WordCount: latest.WordCount,
				Stress:    StressLevel(latest.Text),
			}
			st.lastScore = &score
		}
	}

	if st.lastScore == nil || st.profile.TotalMessages == 0 {
		return e.composer.ComposeQuick(0, MessageScore{}), nil
	}
	return e.composer.ComposeQuick(st.profile.TotalMessages, *st.lastScore), nil
}

// Personality returns the user's trait profile. Users with no history get a
// well-defined empty report, never an error.
func (e *Engine) Personality(ctx context.Context, userID int64) (PersonalityReport, error) {
	st := e.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := e.ensureLoaded(ctx, userID, st); err != nil {
		return PersonalityReport{}, err
	}
	return e.composer.ComposePersonality(st.profile.Counts), nil
}

// reportWindowDays bounds the daily records participating in the
// comprehensive report and its trend analysis.
const reportWindowDays = 7

// Comprehensive assembles the full behavior report: totals, the last week
// of daily rollups, the trend summary over them, and the personality
// profile. Users with no history get an empty report, not an error.
func (e *Engine) Comprehensive(ctx context.Context, userID int64) (ComprehensiveReport, error) {
	st := e.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := e.ensureLoaded(ctx, userID, st); err != nil {
		return ComprehensiveReport{}, err
	}

	records, err := e.recentRecords(ctx, userID, reportWindowDays)
	if err != nil {
		return ComprehensiveReport{}, err
	}

	hourCounts, err := e.store.MessageCountByHour(ctx, userID)
	if err != nil {
		return ComprehensiveReport{}, fmt.Errorf("%w: activity counts for user %d: %w", ErrPersistence, userID, err)
	}

	trend := AnalyzeTrend(records, 0)
	personality := e.composer.ComposePersonality(st.profile.Counts)
	return e.composer.ComposeComprehensive(
		st.profile.TotalMessages, st.profile.SkippedMessages,
		records, trend, personality, hourCounts,
	), nil
}

// Stats returns the user's usage statistics over their whole history.
func (e *Engine) Stats(ctx context.Context, userID int64) (StatsReport, error) {
	st := e.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := e.ensureLoaded(ctx, userID, st); err != nil {
		return StatsReport{}, err
	}

	records, err := e.allRecords(ctx, userID)
	if err != nil {
		return StatsReport{}, err
	}

	return e.composer.ComposeStats(st.profile, records), nil
}

// recentRecords merges the persisted records for the trailing window with
// the in-memory open record, which may be ahead of the store after a
// persistence failure.
func (e *Engine) recentRecords(ctx context.Context, userID int64, days int) ([]DailyRecord, error) {
	to := DateOf(time.Now())
	from := to.AddDate(0, 0, -(days - 1))

	records, err := e.store.DailyRecords(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: daily records for user %d: %w", ErrPersistence, userID, err)
	}
	return e.mergeOpen(userID, records), nil
}

func (e *Engine) allRecords(ctx context.Context, userID int64) ([]DailyRecord, error) {
	to := DateOf(time.Now())
	records, err := e.store.DailyRecords(ctx, userID, time.Time{}, to)
	if err != nil {
		return nil, fmt.Errorf("%w: daily records for user %d: %w", ErrPersistence, userID, err)
	}
	return e.mergeOpen(userID, records), nil
}

func (e *Engine) mergeOpen(userID int64, records []DailyRecord) []DailyRecord {
	open := e.rollup.Open(userID)
	if open == nil {
		return records
	}
	for i := range records {
		if records[i].Date.Equal(open.Date) {
			records[i] = *open
			return records
		}
	}
	return append(records, *open)
}

// addPending parks a closed daily record whose upsert failed. One slot per
// (user, day); a later version of the same finalized day replaces it.
func (e *Engine) addPending(record DailyRecord) {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()

	for i := range e.pending {
		if e.pending[i].UserID == record.UserID && e.pending[i].Date.Equal(record.Date) {
			e.pending[i] = record
			return
		}
	}
	e.pending = append(e.pending, record)
}

// drainPending persists parked closed records, re-parking any that still
// fail. Returns the first persistence error encountered.
func (e *Engine) drainPending(ctx context.Context) error {
	e.pendingMu.Lock()
	pending := e.pending
	e.pending = nil
	e.pendingMu.Unlock()

	var firstErr error
	for _, record := range pending {
		if err := e.store.UpsertDailyRecord(ctx, record); err != nil {
			e.log.WarnContext(ctx, "flush: failed to persist closed daily record",
				"user_id", record.UserID, "date", record.Date.Format(time.DateOnly), "error", err)
			e.addPending(record)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Erase removes all of a user's data: profile, message log, daily records,
// and the in-memory state. Privacy erase is user-initiated and permanent.
func (e *Engine) Erase(ctx context.Context, userID int64) error {
	st := e.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := e.store.DeleteUserData(ctx, userID); err != nil {
		return fmt.Errorf("%w: erase user %d: %w", ErrPersistence, userID, err)
	}

	e.rollup.Drop(userID)

	e.pendingMu.Lock()
	kept := e.pending[:0]
	for _, record := range e.pending {
		if record.UserID != userID {
			kept = append(kept, record)
		}
	}
	e.pending = kept
	e.pendingMu.Unlock()
	st.profile = nil
	st.lastScore = nil
	st.loaded = false

	e.log.InfoContext(ctx, "erased all user data", "user_id", userID)
	return nil
}

// Flush persists every loaded profile, open daily record, and parked closed
// record. It reconciles in-memory aggregates after transient persistence
// failures and gives the open day crash safety; the scheduler runs it
// periodically.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	states := make(map[int64]*userState, len(e.users))
	for id, st := range e.users {
		states[id] = st
	}
	e.mu.Unlock()

	firstErr := e.drainPending(ctx)
	flushed := 0
	for userID, st := range states {
		st.mu.Lock()
		if !st.loaded || st.profile == nil {
			st.mu.Unlock()
			continue
		}
		profile := st.profile.clone()
		st.mu.Unlock()

		if err := e.store.SaveProfile(ctx, profile); err != nil {
			e.log.WarnContext(ctx, "flush: failed to persist profile", "user_id", userID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if open := e.rollup.Open(userID); open != nil {
			if err := e.store.UpsertDailyRecord(ctx, *open); err != nil {
				e.log.WarnContext(ctx, "flush: failed to persist open daily record", "user_id", userID, "error", err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}
		flushed++
	}

	e.log.InfoContext(ctx, "flushed open analytics state", "users", flushed)
	if firstErr != nil {
		return fmt.Errorf("%w: flush: %w", ErrPersistence, firstErr)
	}
	return nil
}
