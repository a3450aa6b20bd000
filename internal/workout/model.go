// Package workout contains the domain core of the bot: the data model,
// the persistence contract, history/stats aggregation, and the per-user
// conversational state machine that turns chat messages into logged sets.
package workout

import "time"

// User is a chat platform user known to the bot. Created on first
// interaction and never deleted.
type User struct {
	ID          int64  `db:"id"`
	DisplayName string `db:"display_name"`
}

// WorkoutSession is a finalized workout. Immutable once persisted and
// always carries at least one entry.
type WorkoutSession struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	MuscleGroup string    `db:"muscle_group"`
	CompletedAt time.Time `db:"completed_at"`

	Entries []ExerciseEntry `db:"-"`
}

// ExerciseEntry is a single logged exercise within a session.
type ExerciseEntry struct {
	ID        int64   `db:"id"`
	SessionID int64   `db:"session_id"`
	Name      string  `db:"name"`
	Sets      int     `db:"sets"`
	Reps      int     `db:"reps"`
	Weight    float64 `db:"weight"`
}

// LoggedEntry is an entry joined with the timestamp of its session,
// used for per-exercise statistics.
type LoggedEntry struct {
	ExerciseEntry
	PerformedAt time.Time `db:"performed_at"`
}

// InProgressWorkout is the transient per-user buffer accumulating entries
// before finalize. It is never persisted; cancel discards it, finish turns
// it into a WorkoutSession.
type InProgressWorkout struct {
	GroupKey   string
	GroupLabel string
	Entries    []ExerciseEntry
	Draft      Draft
}

func newInProgressWorkout() *InProgressWorkout {
	return &InProgressWorkout{Draft: DraftEmpty{}}
}
