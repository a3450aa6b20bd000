package workout

import "sync"

// State identifies a step of the per-user conversation.
type State string

const (
	// StateIdle is the resting state: main menu, no active flow.
	StateIdle State = "idle"
	// StateChoosingGroup waits for a muscle-group pick.
	StateChoosingGroup State = "choosing_group"
	// StateChoosingExercise waits for an exercise pick within the group.
	StateChoosingExercise State = "choosing_exercise"
	// StateEnteringName waits for a custom exercise name.
	StateEnteringName State = "entering_name"
	// StateEnteringSets waits for the set count.
	StateEnteringSets State = "entering_sets"
	// StateEnteringReps waits for the repetition count.
	StateEnteringReps State = "entering_reps"
	// StateEnteringWeight waits for the weight.
	StateEnteringWeight State = "entering_weight"
	// StateChoosingStatsExercise waits for an exercise pick in the stats flow.
	StateChoosingStatsExercise State = "choosing_stats_exercise"
)

// session is one user's conversation: current state plus the in-progress
// workout buffer. The mutex serializes handling of that user's messages so
// they are processed strictly in arrival order; different users proceed
// independently.
type session struct {
	mu         sync.Mutex
	state      State
	workout    *InProgressWorkout
	registered bool
}

// SessionStore keeps per-user sessions for the process lifetime. Sessions
// are created on a user's first message and never evicted.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

// NewSessionStore constructs an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*session)}
}

func (s *SessionStore) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{state: StateIdle}
		s.sessions[userID] = sess
	}
	return sess
}

// StateOf reports the user's current conversation state.
func (s *SessionStore) StateOf(userID int64) State {
	sess := s.get(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}
