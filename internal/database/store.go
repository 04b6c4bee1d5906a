package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/introbot/introspect/internal/analysis"
)

// Store is the persistence collaborator for the analytics engine. It embeds
// analysis.Store and adds maintenance operations that only the scheduler
// cares about.
type Store interface {
	analysis.Store

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore implements Store using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by sqlx. It requires a connected sqlx.DB
// instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetProfile retrieves a user profile. Returns (nil, nil) when the user has
// no profile yet; callers treat that as a new user.
func (s *sqlxStore) GetProfile(ctx context.Context, userID int64) (*analysis.Profile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var row profileRow
	query := `SELECT id, created_at, updated_at, user_id, registration_date,
	                 total_messages, skipped_messages,
	                 extraversion_hits, openness_hits, conscientiousness_hits,
	                 agreeableness_hits, neuroticism_hits
	          FROM user_profiles WHERE user_id = ?`

	err := s.db.GetContext(ctx, &row, query, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No profile found", "user_id", userID)
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get profile for user %d: %w", userID, err)
	}

	return row.toProfile(), nil
}

// SaveProfile inserts or updates a user profile.
func (s *sqlxStore) SaveProfile(ctx context.Context, profile *analysis.Profile) error {
	if profile == nil {
		return fmt.Errorf("cannot save nil profile")
	}
	if profile.UserID == 0 {
		return fmt.Errorf("profile must have a non-zero user_id")
	}

	now := time.Now().UTC()
	row := profileToRow(profile, now)
	row.CreatedAt = now

	query := `
		INSERT INTO user_profiles (
			user_id, registration_date, total_messages, skipped_messages,
			extraversion_hits, openness_hits, conscientiousness_hits,
			agreeableness_hits, neuroticism_hits, created_at, updated_at
		) VALUES (
			:user_id, :registration_date, :total_messages, :skipped_messages,
			:extraversion_hits, :openness_hits, :conscientiousness_hits,
			:agreeableness_hits, :neuroticism_hits, :created_at, :updated_at
		)
		ON CONFLICT(user_id) DO UPDATE SET
			total_messages = excluded.total_messages,
			skipped_messages = excluded.skipped_messages,
			extraversion_hits = excluded.extraversion_hits,
			openness_hits = excluded.openness_hits,
			conscientiousness_hits = excluded.conscientiousness_hits,
			agreeableness_hits = excluded.agreeableness_hits,
			neuroticism_hits = excluded.neuroticism_hits,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		s.logger.ErrorContext(ctx, "Error saving profile", "user_id", profile.UserID, "error", err)
		return fmt.Errorf("failed to save profile for user %d: %w", profile.UserID, err)
	}

	s.logger.DebugContext(ctx, "Profile saved", "user_id", profile.UserID,
		"total_messages", profile.TotalMessages)
	return nil
}

// AppendMessage inserts a message into the append-only log.
func (s *sqlxStore) AppendMessage(ctx context.Context, message analysis.Message) error {
	if message.UserID == 0 {
		return fmt.Errorf("message must have a non-zero user_id")
	}
	if message.Timestamp.IsZero() {
		return fmt.Errorf("message must have a non-zero timestamp")
	}

	row := messageRow{
		CreatedAt: time.Now().UTC(),
		UserID:    message.UserID,
		Content:   message.Text,
		Timestamp: message.Timestamp,
		Sentiment: message.Sentiment,
		WordCount: message.WordCount,
	}

	query := `
		INSERT INTO messages (user_id, content, timestamp, sentiment, word_count, created_at)
		VALUES (:user_id, :content, :timestamp, :sentiment, :word_count, :created_at)
	`

	if _, err := s.db.NamedExecContext(ctx, query, &row); err != nil {
		s.logger.ErrorContext(ctx, "Error appending message", "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to append message for user %d: %w", message.UserID, err)
	}

	return nil
}

// RecentMessages retrieves the user's most recent messages, newest first.
func (s *sqlxStore) RecentMessages(ctx context.Context, userID int64, limit int) ([]analysis.Message, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id cannot be zero")
	}
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var rows []messageRow
	query := `
		SELECT id, created_at, user_id, content, timestamp, sentiment, word_count
		FROM messages
		WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	if err := s.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error getting recent messages", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get recent messages for user %d: %w", userID, err)
	}

	messages := make([]analysis.Message, len(rows))
	for i := range rows {
		messages[i] = rows[i].toMessage()
	}
	return messages, nil
}

// UpsertDailyRecord inserts or updates the daily aggregate for the
// record's (user, date) key.
func (s *sqlxStore) UpsertDailyRecord(ctx context.Context, record analysis.DailyRecord) error {
	if record.UserID == 0 {
		return fmt.Errorf("daily record must have a non-zero user_id")
	}
	if record.Date.IsZero() {
		return fmt.Errorf("daily record must have a non-zero date")
	}

	now := time.Now().UTC()
	row, err := recordToRow(record, now)
	if err != nil {
		return err
	}
	row.CreatedAt = now

	query := `
		INSERT INTO daily_analytics (
			user_id, date, message_count, sentiment_sum, word_count_sum,
			stress_sum, trait_snapshot, created_at, updated_at
		) VALUES (
			:user_id, :date, :message_count, :sentiment_sum, :word_count_sum,
			:stress_sum, :trait_snapshot, :created_at, :updated_at
		)
		ON CONFLICT(user_id, date) DO UPDATE SET
			message_count = excluded.message_count,
			sentiment_sum = excluded.sentiment_sum,
			word_count_sum = excluded.word_count_sum,
			stress_sum = excluded.stress_sum,
			trait_snapshot = excluded.trait_snapshot,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting daily record",
			"user_id", record.UserID, "date", record.Date.Format(time.DateOnly), "error", err)
		return fmt.Errorf("failed to upsert daily record for user %d: %w", record.UserID, err)
	}

	return nil
}

// DailyRecords retrieves the user's daily aggregates with
// from <= date <= to, ordered oldest to newest. A zero from means no lower
// bound.
func (s *sqlxStore) DailyRecords(ctx context.Context, userID int64, from, to time.Time) ([]analysis.DailyRecord, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var rows []dailyRow
	var err error
	if from.IsZero() {
		query := `
			SELECT id, created_at, updated_at, user_id, date, message_count,
			       sentiment_sum, word_count_sum, stress_sum, trait_snapshot
			FROM daily_analytics
			WHERE user_id = ? AND date <= ?
			ORDER BY date ASC
		`
		err = s.db.SelectContext(ctx, &rows, query, userID, to)
	} else {
		query := `
			SELECT id, created_at, updated_at, user_id, date, message_count,
			       sentiment_sum, word_count_sum, stress_sum, trait_snapshot
			FROM daily_analytics
			WHERE user_id = ? AND date >= ? AND date <= ?
			ORDER BY date ASC
		`
		err = s.db.SelectContext(ctx, &rows, query, userID, from, to)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting daily records", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get daily records for user %d: %w", userID, err)
	}

	records := make([]analysis.DailyRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			// A corrupt snapshot loses the trait overlay, not the sums.
			s.logger.WarnContext(ctx, "Skipping corrupt trait snapshot", "user_id", userID, "error", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// LatestDailyRecord retrieves the user's newest daily aggregate. Returns
// (nil, nil) when the user has none.
func (s *sqlxStore) LatestDailyRecord(ctx context.Context, userID int64) (*analysis.DailyRecord, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var row dailyRow
	query := `
		SELECT id, created_at, updated_at, user_id, date, message_count,
		       sentiment_sum, word_count_sum, stress_sum, trait_snapshot
		FROM daily_analytics
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT 1
	`

	err := s.db.GetContext(ctx, &row, query, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting latest daily record", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get latest daily record for user %d: %w", userID, err)
	}

	record, err := row.toRecord()
	if err != nil {
		s.logger.WarnContext(ctx, "Skipping corrupt trait snapshot", "user_id", userID, "error", err)
	}
	return &record, nil
}

// MessageCountByHour aggregates the user's message log by hour of day.
func (s *sqlxStore) MessageCountByHour(ctx context.Context, userID int64) (map[int]int, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var rows []struct {
		Hour  int `db:"hour"`
		Count int `db:"count"`
	}
	query := `
		SELECT CAST(strftime('%H', timestamp) AS INTEGER) AS hour, COUNT(*) AS count
		FROM messages
		WHERE user_id = ?
		GROUP BY hour
	`

	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Error getting activity counts", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get activity counts for user %d: %w", userID, err)
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Hour] = row.Count
	}
	return counts, nil
}

// DeleteUserData removes the user's profile, message log, and daily
// aggregates in a single transaction (privacy erase).
func (s *sqlxStore) DeleteUserData(ctx context.Context, userID int64) error {
	if userID == 0 {
		return fmt.Errorf("user_id cannot be zero")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for user erase", "user_id", userID, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	var deleted int64
	for _, query := range []string{
		`DELETE FROM messages WHERE user_id = ?`,
		`DELETE FROM daily_analytics WHERE user_id = ?`,
		`DELETE FROM user_profiles WHERE user_id = ?`,
	} {
		result, err := tx.ExecContext(ctx, query, userID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error erasing user data", "user_id", userID, "error", err)
			return fmt.Errorf("failed to erase data for user %d: %w", userID, err)
		}
		count, _ := result.RowsAffected()
		deleted += count
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit user erase", "user_id", userID, "error", err)
		return fmt.Errorf("failed to commit erase for user %d: %w", userID, err)
	}
	tx = nil

	s.logger.InfoContext(ctx, "Erased all user data", "user_id", userID, "rows_deleted", deleted)
	return nil
}

// RunSQLMaintenance executes a VACUUM on the SQLite database. VACUUM must
// run outside a transaction in SQLite.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed.")
	return nil
}
