package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"gymbot/core/logger"
)

const defaultStoreTimeout = 5 * time.Second

// PostgresStore implements Store on top of sqlx. Every call is bounded by
// the configured timeout so a stalled database surfaces as a recoverable
// error instead of a hung conversation.
type PostgresStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgresStore wraps an open sqlx connection pool.
func NewPostgresStore(db *sqlx.DB, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &PostgresStore{db: db, timeout: timeout}
}

func (s *PostgresStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.timeout)
}

// UpsertUser creates the user row on first contact; later calls are no-ops.
func (s *PostgresStore) UpsertUser(ctx context.Context, id int64, displayName string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, display_name) VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING`,
		id, displayName,
	)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", id, err)
	}
	return nil
}

// SaveSession writes the session and its entries in one transaction.
func (s *PostgresStore) SaveSession(ctx context.Context, userID int64, group string, completedAt time.Time, entries []ExerciseEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, fmt.Errorf("save session for user %d: no entries", userID)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	start := time.Now()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save session for user %d: begin: %w", userID, err)
	}
	defer func() { _ = tx.Rollback() }()

	var sessionID int64
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO workout_sessions (user_id, muscle_group, completed_at)
		 VALUES ($1, $2, $3) RETURNING id`,
		userID, group, completedAt,
	).Scan(&sessionID)
	if err != nil {
		return 0, fmt.Errorf("save session for user %d: insert session: %w", userID, err)
	}

	for _, e := range entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exercise_entries (session_id, name, sets, reps, weight)
			 VALUES ($1, $2, $3, $4, $5)`,
			sessionID, e.Name, e.Sets, e.Reps, e.Weight,
		)
		if err != nil {
			return 0, fmt.Errorf("save session %d: insert entry %q: %w", sessionID, e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save session %d: commit: %w", sessionID, err)
	}

	logger.DB.Info("session saved",
		slog.String("event", "db.save_session"),
		slog.Int64("user_id", userID),
		slog.Int64("session_id", sessionID),
		slog.Int("entries", len(entries)),
		slog.Duration("duration", logger.Took(start)),
	)
	return sessionID, nil
}

// FetchHistory loads the most recent sessions with their entries attached.
func (s *PostgresStore) FetchHistory(ctx context.Context, userID int64, limit int) ([]WorkoutSession, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var sessions []WorkoutSession
	err := s.db.SelectContext(ctx, &sessions,
		`SELECT id, user_id, muscle_group, completed_at
		 FROM workout_sessions
		 WHERE user_id = $1
		 ORDER BY completed_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch history for user %d: %w", userID, err)
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(sessions))
	for _, sess := range sessions {
		ids = append(ids, sess.ID)
	}

	query, args, err := sqlx.In(
		`SELECT id, session_id, name, sets, reps, weight
		 FROM exercise_entries
		 WHERE session_id IN (?)
		 ORDER BY id ASC`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch history for user %d: build entries query: %w", userID, err)
	}

	var entries []ExerciseEntry
	if err := s.db.SelectContext(ctx, &entries, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("fetch history for user %d: entries: %w", userID, err)
	}

	bySession := make(map[int64][]ExerciseEntry, len(sessions))
	for _, e := range entries {
		bySession[e.SessionID] = append(bySession[e.SessionID], e)
	}
	for i := range sessions {
		sessions[i].Entries = bySession[sessions[i].ID]
	}
	return sessions, nil
}

// FetchEntriesByName loads all exact-name entries in chronological order.
func (s *PostgresStore) FetchEntriesByName(ctx context.Context, userID int64, name string) ([]LoggedEntry, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var entries []LoggedEntry
	err := s.db.SelectContext(ctx, &entries,
		`SELECT e.id, e.session_id, e.name, e.sets, e.reps, e.weight,
		        s.completed_at AS performed_at
		 FROM exercise_entries e
		 JOIN workout_sessions s ON s.id = e.session_id
		 WHERE s.user_id = $1 AND e.name = $2
		 ORDER BY s.completed_at ASC, e.id ASC`,
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch entries %q for user %d: %w", name, userID, err)
	}
	return entries, nil
}

// HasEntries reports whether the user has logged anything at all.
func (s *PostgresStore) HasEntries(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
		   SELECT 1
		   FROM exercise_entries e
		   JOIN workout_sessions s ON s.id = e.session_id
		   WHERE s.user_id = $1
		 )`,
		userID,
	)
	if err != nil {
		return false, fmt.Errorf("check entries for user %d: %w", userID, err)
	}
	return exists, nil
}
