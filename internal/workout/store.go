package workout

import (
	"context"
	"time"
)

// Store is the append-only persistence contract for users, sessions, and
// entries. No update or delete operations exist.
type Store interface {
	// UpsertUser creates the user row if it does not exist yet. Existing
	// rows are left untouched.
	UpsertUser(ctx context.Context, id int64, displayName string) error

	// SaveSession persists a finalized session together with all of its
	// entries. The write is atomic: either the session and every entry
	// are stored, or nothing is.
	SaveSession(ctx context.Context, userID int64, group string, completedAt time.Time, entries []ExerciseEntry) (int64, error)

	// FetchHistory returns up to limit sessions with their entries,
	// most recent first. No history yields an empty slice, not an error.
	FetchHistory(ctx context.Context, userID int64, limit int) ([]WorkoutSession, error)

	// FetchEntriesByName returns all entries with the exact name across
	// the user's sessions, ordered by session timestamp ascending.
	FetchEntriesByName(ctx context.Context, userID int64, name string) ([]LoggedEntry, error)

	// HasEntries reports whether the user has any logged entries at all.
	HasEntries(ctx context.Context, userID int64) (bool, error)
}
