package workout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store used by the state machine and aggregator
// tests. Failure injection mimics a database outage.
type fakeStore struct {
	mu        sync.Mutex
	users     map[int64]string
	sessions  []WorkoutSession
	nextID    int64
	saveCalls int

	failSave  error
	failFetch error
	panicSave bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]string)}
}

func (f *fakeStore) UpsertUser(_ context.Context, id int64, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		f.users[id] = displayName
	}
	return nil
}

func (f *fakeStore) SaveSession(_ context.Context, userID int64, group string, completedAt time.Time, entries []ExerciseEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.panicSave {
		panic("store gone")
	}
	if f.failSave != nil {
		return 0, f.failSave
	}
	if len(entries) == 0 {
		return 0, errors.New("no entries")
	}
	f.nextID++
	sess := WorkoutSession{
		ID:          f.nextID,
		UserID:      userID,
		MuscleGroup: group,
		CompletedAt: completedAt,
		Entries:     append([]ExerciseEntry(nil), entries...),
	}
	f.sessions = append(f.sessions, sess)
	return sess.ID, nil
}

func (f *fakeStore) FetchHistory(_ context.Context, userID int64, limit int) ([]WorkoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch != nil {
		return nil, f.failFetch
	}
	var out []WorkoutSession
	for i := len(f.sessions) - 1; i >= 0 && len(out) < limit; i-- {
		if f.sessions[i].UserID == userID {
			out = append(out, f.sessions[i])
		}
	}
	return out, nil
}

func (f *fakeStore) FetchEntriesByName(_ context.Context, userID int64, name string) ([]LoggedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch != nil {
		return nil, f.failFetch
	}
	var out []LoggedEntry
	for _, sess := range f.sessions {
		if sess.UserID != userID {
			continue
		}
		for _, e := range sess.Entries {
			if e.Name == name {
				out = append(out, LoggedEntry{ExerciseEntry: e, PerformedAt: sess.CompletedAt})
			}
		}
	}
	return out, nil
}

func (f *fakeStore) HasEntries(_ context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch != nil {
		return false, f.failFetch
	}
	for _, sess := range f.sessions {
		if sess.UserID == userID && len(sess.Entries) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func newTestMachine(store Store) *Machine {
	m := NewMachine(store, NewAggregator(store), NewSessionStore(), DefaultCatalog())
	m.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

func send(t *testing.T, m *Machine, userID int64, texts ...string) Reply {
	t.Helper()
	var last Reply
	for _, text := range texts {
		last = m.Handle(context.Background(), userID, "tester", text)
		require.NotEmpty(t, last)
	}
	return last
}

func TestFullWorkoutFlow(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)
	const userID = int64(42)

	reply := send(t, m, userID, BtnStartWorkout)
	assert.Equal(t, msgChooseGroup, reply[0].Text)
	assert.Equal(t, StateChoosingGroup, m.StateOf(userID))

	reply = send(t, m, userID, "Спина")
	assert.Contains(t, reply[0].Text, "Спина")
	assert.Equal(t, StateChoosingExercise, m.StateOf(userID))

	reply = send(t, m, userID, "Подтягивания")
	require.Len(t, reply, 2)
	assert.Contains(t, reply[0].Text, "Подтягивания")
	assert.Equal(t, msgEnterSets, reply[1].Text)

	reply = send(t, m, userID, "3")
	assert.Equal(t, msgEnterReps, reply[0].Text)

	reply = send(t, m, userID, "10")
	assert.Equal(t, msgEnterWeight, reply[0].Text)

	reply = send(t, m, userID, "50")
	assert.Equal(t, msgChooseGroup, reply[0].Text)
	assert.Equal(t, StateChoosingGroup, m.StateOf(userID))

	reply = send(t, m, userID, BtnFinish)
	assert.Equal(t, msgFinished, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(userID))

	require.Len(t, store.sessions, 1)
	sess := store.sessions[0]
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, "Спина", sess.MuscleGroup)
	require.Len(t, sess.Entries, 1)
	assert.Equal(t, ExerciseEntry{Name: "Подтягивания", Sets: 3, Reps: 10, Weight: 50}, sess.Entries[0])
}

func TestFinishWithoutEntriesSkipsStore(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	reply := send(t, m, 1, BtnStartWorkout, BtnFinish)
	assert.Equal(t, msgFinished, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))
	assert.Zero(t, store.saveCalls)
	assert.Empty(t, store.sessions)
}

func TestCancelDiscardsEverything(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Ноги", "Приседания", "5", "5", "100")
	reply := send(t, m, 1, BtnCancel)
	assert.Equal(t, msgCancelled, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))

	// Nothing left to finish afterwards.
	send(t, m, 1, BtnStartWorkout, BtnFinish)
	assert.Zero(t, store.saveCalls)
}

func TestInvalidNumberReprompts(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Грудь", "Жим штанги")
	reply := send(t, m, 1, "abc")
	assert.Equal(t, msgNotANumber, reply[0].Text)
	assert.Equal(t, StateEnteringSets, m.StateOf(1))

	// The draft name survived the bad input.
	reply = send(t, m, 1, "4")
	assert.Equal(t, msgEnterReps, reply[0].Text)

	reply = send(t, m, 1, "0")
	assert.Equal(t, msgNotANumber, reply[0].Text)
	assert.Equal(t, StateEnteringReps, m.StateOf(1))
}

func TestWeightAcceptsDecimalComma(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Руки", "Французский жим", "3", "12", "12,5")
	send(t, m, 1, BtnFinish)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, 12.5, store.sessions[0].Entries[0].Weight)
}

func TestCustomExerciseName(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	reply := send(t, m, 1, BtnStartWorkout, "Плечи", BtnAddCustom)
	assert.Equal(t, msgEnterName, reply[0].Text)
	assert.Equal(t, StateEnteringName, m.StateOf(1))

	send(t, m, 1, "Тяга к подбородку", "3", "15", "30")
	send(t, m, 1, BtnFinish)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, "Тяга к подбородку", store.sessions[0].Entries[0].Name)
}

func TestSwitchGroupMidSelection(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Спина")
	reply := send(t, m, 1, "Ноги")
	assert.Contains(t, reply[0].Text, "Ноги")
	assert.Equal(t, StateChoosingExercise, m.StateOf(1))

	send(t, m, 1, "Выпады", "3", "10", "20")
	send(t, m, 1, BtnFinish)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, "Ноги", store.sessions[0].MuscleGroup)
}

func TestSaveFailureKeepsBuffer(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Пресс", "Планка", "3", "1", "0")
	store.failSave = errors.New("connection refused")

	reply := send(t, m, 1, BtnFinish)
	assert.Equal(t, msgSaveFailed, reply[0].Text)
	assert.Equal(t, StateChoosingGroup, m.StateOf(1))

	// Retry succeeds with the same buffer.
	store.failSave = nil
	reply = send(t, m, 1, BtnFinish)
	assert.Equal(t, msgFinished, reply[0].Text)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, "Планка", store.sessions[0].Entries[0].Name)
}

func TestUnexpectedFaultLeavesBufferIntact(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Пресс", "Скручивания", "3", "20", "0")
	store.panicSave = true

	reply := send(t, m, 1, BtnFinish)
	assert.Equal(t, msgInternal, reply[0].Text)
	assert.Equal(t, StateChoosingGroup, m.StateOf(1))

	// The buffer survived the fault; a retry persists the original entry.
	store.panicSave = false
	reply = send(t, m, 1, BtnFinish)
	assert.Equal(t, msgFinished, reply[0].Text)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, "Скручивания", store.sessions[0].Entries[0].Name)
}

func TestHistoryEmpty(t *testing.T) {
	m := newTestMachine(newFakeStore())
	reply := send(t, m, 1, BtnHistory)
	assert.Equal(t, msgNoHistory, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))
}

func TestHistoryListsRecentSessions(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Спина", "Подтягивания", "3", "10", "0")
	send(t, m, 1, BtnFinish)

	reply := send(t, m, 1, BtnHistory)
	assert.Contains(t, reply[0].Text, "Последние тренировки")
	assert.Contains(t, reply[0].Text, "Подтягивания")
	assert.Contains(t, reply[0].Text, "3 сетов × 10 повт.")
	assert.Equal(t, StateIdle, m.StateOf(1))
}

func TestStatsWithoutHistoryStaysIdle(t *testing.T) {
	m := newTestMachine(newFakeStore())
	reply := send(t, m, 1, BtnStats)
	assert.Equal(t, msgNoStats, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))
}

func TestStatsFlow(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Спина", "Подтягивания", "3", "10", "50")
	send(t, m, 1, BtnFinish)

	reply := send(t, m, 1, BtnStats)
	assert.Equal(t, msgChooseStats, reply[0].Text)
	assert.Equal(t, StateChoosingStatsExercise, m.StateOf(1))
	assert.Contains(t, reply[0].Menu, []string{"Подтягивания"})

	reply = send(t, m, 1, "Подтягивания")
	require.Len(t, reply, 2)
	require.NotNil(t, reply[0].Stats)
	assert.Equal(t, 50.0, reply[0].Stats.MaxWeight)
	assert.Contains(t, reply[0].Text, "Подтягивания")
	// Stays in the stats flow for further picks.
	assert.Equal(t, StateChoosingStatsExercise, m.StateOf(1))

	reply = send(t, m, 1, BtnBack)
	assert.Equal(t, msgBackToMenu, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))
}

func TestStatsUnknownExercise(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Спина", "Подтягивания", "3", "10", "50")
	send(t, m, 1, BtnFinish)
	send(t, m, 1, BtnStats)

	reply := send(t, m, 1, "Жим лёжа")
	assert.Equal(t, msgUnknown, reply[0].Text)
	assert.Equal(t, StateChoosingStatsExercise, m.StateOf(1))
}

func TestFinishOutsideWorkoutIsUnknown(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	reply := send(t, m, 1, BtnFinish)
	assert.Equal(t, msgUnknown, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))
	assert.Zero(t, store.saveCalls)
}

func TestUnknownTextInIdle(t *testing.T) {
	m := newTestMachine(newFakeStore())
	reply := send(t, m, 1, "привет")
	assert.Equal(t, msgUnknown, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))
}

func TestHistoryUnavailableDuringWorkout(t *testing.T) {
	m := newTestMachine(newFakeStore())
	send(t, m, 1, BtnStartWorkout)
	reply := send(t, m, 1, BtnHistory)
	assert.Equal(t, msgUnknown, reply[0].Text)
	assert.Equal(t, StateChoosingGroup, m.StateOf(1))
}

func TestUsersAreIndependent(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 1, BtnStartWorkout, "Спина")
	send(t, m, 2, BtnStartWorkout, "Ноги", "Приседания", "5", "5", "80")
	send(t, m, 2, BtnFinish)

	assert.Equal(t, StateChoosingExercise, m.StateOf(1))
	assert.Equal(t, StateIdle, m.StateOf(2))
	require.Len(t, store.sessions, 1)
	assert.Equal(t, int64(2), store.sessions[0].UserID)
}

func TestRegistersUserOnFirstMessage(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)

	send(t, m, 7, BtnStartWorkout)
	assert.Equal(t, "tester", store.users[7])
}

func TestFetchFailureAnswersWithRetryNotice(t *testing.T) {
	store := newFakeStore()
	m := newTestMachine(store)
	store.failFetch = errors.New("connection refused")

	reply := send(t, m, 1, BtnHistory)
	assert.Equal(t, msgLoadFailed, reply[0].Text)
	assert.Equal(t, StateIdle, m.StateOf(1))
}
