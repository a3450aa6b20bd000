package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gymbot/core/logger"
)

// Prompts and notices sent to the user.
const (
	MsgWelcome        = "Добро пожаловать в тренировочный бот! 🏋️\nВыберите действие:"
	msgChooseGroup    = "Выберите группу мышц:"
	msgChooseExercise = "Выберите упражнение на %s:"
	msgChosen         = "Вы выбрали: %s"
	msgEnterName      = "Введите название упражнения:"
	msgEnterSets      = "Введите количество подходов:"
	msgEnterReps      = "Введите количество повторений:"
	msgEnterWeight    = "Введите вес (в кг):"
	msgNotANumber     = "Введите число!"
	msgCancelled      = "Тренировка отменена."
	msgFinished       = "✅ Тренировка успешно завершена!"
	msgNoHistory      = "У вас пока нет записей о тренировках."
	msgNoStats        = "Нет данных для отображения статистики."
	msgChooseStats    = "Выберите упражнение для анализа:"
	msgPickAnother    = "Выберите другое упражнение или нажмите '⬅️ Назад'."
	msgBackToMenu     = "Возврат в главное меню."
	msgUnknown        = "Не понимаю. Воспользуйтесь кнопками меню."
	msgSaveFailed     = "⚠️ Не удалось сохранить тренировку. Попробуйте ещё раз."
	msgLoadFailed     = "⚠️ Не удалось загрузить данные. Попробуйте ещё раз."
	msgInternal       = "Что-то пошло не так. Попробуйте ещё раз."
)

// Machine is the per-user conversational state machine. One Machine serves
// all users; per-user state lives in the injected SessionStore and access
// to it is serialized per user.
type Machine struct {
	store    Store
	agg      *Aggregator
	sessions *SessionStore
	catalog  *Catalog

	historyLimit int
	now          func() time.Time
}

// NewMachine wires the state machine with its collaborators. The session
// store is injected so its lifecycle (and any eviction policy) stays outside
// the machine.
func NewMachine(store Store, agg *Aggregator, sessions *SessionStore, catalog *Catalog) *Machine {
	return &Machine{
		store:        store,
		agg:          agg,
		sessions:     sessions,
		catalog:      catalog,
		historyLimit: DefaultHistoryLimit,
		now:          time.Now,
	}
}

// StateOf reports the user's current conversation state.
func (m *Machine) StateOf(userID int64) State {
	return m.sessions.StateOf(userID)
}

// RegisterUser creates the user row on first contact (e.g. the /start
// command) without touching conversation state.
func (m *Machine) RegisterUser(ctx context.Context, userID int64, displayName string) error {
	return m.store.UpsertUser(ctx, userID, displayName)
}

// Handle interprets one incoming message and returns the messages to send
// back. Messages from the same user are processed strictly in order; an
// unexpected fault is logged and answered with a generic retry notice while
// the in-progress buffer stays exactly as it was.
func (m *Machine) Handle(ctx context.Context, userID int64, displayName, text string) (reply Reply) {
	sess := m.sessions.get(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "fsm", "fsm.fault",
				slog.Int64("user_id", userID),
				slog.String("state", string(sess.state)),
				slog.String("err", fmt.Sprint(r)),
			)
			reply = Reply{textMsg(msgInternal)}
		}
	}()

	m.ensureUser(ctx, sess, userID, displayName)

	before := sess.state
	reply = m.dispatch(ctx, sess, userID, text)
	if sess.state != before {
		logger.Debug(ctx, "fsm", "fsm.transition",
			slog.Int64("user_id", userID),
			slog.String("from", string(before)),
			slog.String("to", string(sess.state)),
		)
	}
	return reply
}

// ensureUser upserts the user row once per process lifetime. A failed
// attempt is retried on the next message.
func (m *Machine) ensureUser(ctx context.Context, sess *session, userID int64, displayName string) {
	if sess.registered {
		return
	}
	if err := m.store.UpsertUser(ctx, userID, displayName); err != nil {
		logger.Warn(ctx, "fsm", "fsm.upsert_user",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return
	}
	sess.registered = true
}

func (m *Machine) dispatch(ctx context.Context, sess *session, userID int64, text string) Reply {
	// Global commands take precedence over state-specific input.
	switch Classify(text) {
	case CmdStartWorkout:
		return m.startWorkout(sess)
	case CmdCancel:
		return m.cancel(sess)
	case CmdFinish:
		switch sess.state {
		case StateChoosingGroup, StateChoosingExercise, StateEnteringName,
			StateEnteringSets, StateEnteringReps, StateEnteringWeight:
			return m.finish(ctx, sess, userID)
		}
		return m.unknown()
	case CmdBack:
		if sess.state == StateChoosingStatsExercise {
			sess.state = StateIdle
			return Reply{menuMsg(msgBackToMenu, MainMenuRows())}
		}
		return m.unknown()
	case CmdHistory:
		if sess.state == StateIdle {
			return m.history(ctx, userID)
		}
		return m.unknown()
	case CmdStats:
		if sess.state == StateIdle {
			return m.stats(ctx, sess, userID)
		}
		return m.unknown()
	case CmdAddCustom:
		if sess.state == StateChoosingExercise {
			sess.state = StateEnteringName
			return Reply{textMsg(msgEnterName)}
		}
		return m.unknown()
	}

	switch sess.state {
	case StateChoosingGroup:
		return m.chooseGroup(sess, text)
	case StateChoosingExercise:
		return m.chooseExercise(sess, text)
	case StateEnteringName:
		return m.enterName(sess, text)
	case StateEnteringSets:
		return m.enterSets(sess, text)
	case StateEnteringReps:
		return m.enterReps(sess, text)
	case StateEnteringWeight:
		return m.enterWeight(sess, text)
	case StateChoosingStatsExercise:
		return m.statsFor(ctx, sess, userID, text)
	}
	return m.unknown()
}

func (m *Machine) unknown() Reply {
	return Reply{textMsg(msgUnknown)}
}

// startWorkout reuses an existing buffer if one is already in progress;
// only its muscle group will be re-chosen, confirmed entries survive.
func (m *Machine) startWorkout(sess *session) Reply {
	if sess.workout == nil {
		sess.workout = newInProgressWorkout()
	}
	sess.state = StateChoosingGroup
	return Reply{menuMsg(msgChooseGroup, groupMenuRows(m.catalog))}
}

func (m *Machine) cancel(sess *session) Reply {
	sess.workout = nil
	sess.state = StateIdle
	return Reply{menuMsg(msgCancelled, MainMenuRows())}
}

// finish persists the buffer when it holds at least one confirmed entry.
// An empty or absent buffer is discarded without touching the store. On a
// store failure buffer and state stay unchanged so the user can retry.
func (m *Machine) finish(ctx context.Context, sess *session, userID int64) Reply {
	w := sess.workout
	if w == nil || len(w.Entries) == 0 {
		sess.workout = nil
		sess.state = StateIdle
		return Reply{menuMsg(msgFinished, MainMenuRows())}
	}

	sessionID, err := m.store.SaveSession(ctx, userID, w.GroupLabel, m.now(), w.Entries)
	if err != nil {
		logger.Error(ctx, "fsm", "fsm.save_session",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return Reply{textMsg(msgSaveFailed)}
	}

	logger.Info(ctx, "fsm", "fsm.session_saved",
		slog.Int64("user_id", userID),
		slog.Int64("session_id", sessionID),
		slog.Int("entries", len(w.Entries)),
	)
	sess.workout = nil
	sess.state = StateIdle
	return Reply{menuMsg(msgFinished, MainMenuRows())}
}

func (m *Machine) history(ctx context.Context, userID int64) Reply {
	sessions, err := m.agg.ListHistory(ctx, userID, m.historyLimit)
	if err != nil {
		logger.Error(ctx, "fsm", "fsm.history",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return Reply{textMsg(msgLoadFailed)}
	}
	if len(sessions) == 0 {
		return Reply{textMsg(msgNoHistory)}
	}
	return Reply{menuMsg(FormatHistory(sessions), MainMenuRows())}
}

func (m *Machine) stats(ctx context.Context, sess *session, userID int64) Reply {
	ok, err := m.agg.HasHistory(ctx, userID)
	if err != nil {
		logger.Error(ctx, "fsm", "fsm.stats",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return Reply{textMsg(msgLoadFailed)}
	}
	if !ok {
		return Reply{menuMsg(msgNoStats, MainMenuRows())}
	}

	names, err := m.agg.KnownExerciseNames(ctx, userID)
	if err != nil {
		logger.Error(ctx, "fsm", "fsm.stats",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return Reply{textMsg(msgLoadFailed)}
	}
	sess.state = StateChoosingStatsExercise
	return Reply{menuMsg(msgChooseStats, statsMenuRows(names))}
}

// statsFor stays in the stats state so the user can inspect several
// exercises in a row.
func (m *Machine) statsFor(ctx context.Context, sess *session, userID int64, name string) Reply {
	report, err := m.agg.ExerciseStats(ctx, userID, name)
	if errors.Is(err, ErrNoData) {
		return m.unknown()
	}
	if err != nil {
		logger.Error(ctx, "fsm", "fsm.exercise_stats",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return Reply{textMsg(msgLoadFailed)}
	}
	return Reply{statsMsg(report), textMsg(msgPickAnother)}
}

func (m *Machine) chooseGroup(sess *session, text string) Reply {
	group, ok := m.catalog.GroupByLabel(text)
	if !ok {
		return m.unknown()
	}
	if sess.workout == nil {
		sess.workout = newInProgressWorkout()
	}
	sess.workout.GroupKey = group.Key
	sess.workout.GroupLabel = group.Label
	sess.state = StateChoosingExercise
	return Reply{menuMsg(fmt.Sprintf(msgChooseExercise, group.Label), exerciseMenuRows(group))}
}

// chooseExercise matches catalog names literally before anything else so an
// exercise can never be mistaken for free-form input. Picking another
// muscle-group label re-labels the current buffer instead.
func (m *Machine) chooseExercise(sess *session, text string) Reply {
	group, ok := m.catalog.GroupByKey(sess.workout.GroupKey)
	if ok && group.HasExercise(text) {
		sess.workout.Draft = DraftNamed{Name: text}
		sess.state = StateEnteringSets
		return Reply{textMsg(fmt.Sprintf(msgChosen, text)), textMsg(msgEnterSets)}
	}
	if _, isGroup := m.catalog.GroupByLabel(text); isGroup {
		return m.chooseGroup(sess, text)
	}
	return m.unknown()
}

func (m *Machine) enterName(sess *session, text string) Reply {
	if text == "" {
		return m.unknown()
	}
	sess.workout.Draft = DraftNamed{Name: text}
	sess.state = StateEnteringSets
	return Reply{textMsg(msgEnterSets)}
}

func (m *Machine) enterSets(sess *session, text string) Reply {
	draft, ok := sess.workout.Draft.(DraftNamed)
	if !ok {
		return m.resetDraft(sess)
	}
	sets, err := ParsePositiveInt(text)
	if err != nil {
		return Reply{textMsg(msgNotANumber)}
	}
	sess.workout.Draft = DraftWithSets{Name: draft.Name, Sets: sets}
	sess.state = StateEnteringReps
	return Reply{textMsg(msgEnterReps)}
}

func (m *Machine) enterReps(sess *session, text string) Reply {
	draft, ok := sess.workout.Draft.(DraftWithSets)
	if !ok {
		return m.resetDraft(sess)
	}
	reps, err := ParsePositiveInt(text)
	if err != nil {
		return Reply{textMsg(msgNotANumber)}
	}
	sess.workout.Draft = DraftWithReps{Name: draft.Name, Sets: draft.Sets, Reps: reps}
	sess.state = StateEnteringWeight
	return Reply{textMsg(msgEnterWeight)}
}

// enterWeight completes the draft: the finished entry joins the buffer and
// the flow returns to group selection for the next exercise.
func (m *Machine) enterWeight(sess *session, text string) Reply {
	draft, ok := sess.workout.Draft.(DraftWithReps)
	if !ok {
		return m.resetDraft(sess)
	}
	weight, err := ParseWeight(text)
	if err != nil {
		return Reply{textMsg(msgNotANumber)}
	}
	sess.workout.Entries = append(sess.workout.Entries, ExerciseEntry{
		Name:   draft.Name,
		Sets:   draft.Sets,
		Reps:   draft.Reps,
		Weight: weight,
	})
	sess.workout.Draft = DraftEmpty{}
	sess.state = StateChoosingGroup
	return Reply{menuMsg(msgChooseGroup, groupMenuRows(m.catalog))}
}

// resetDraft recovers from a draft/state mismatch that should not occur.
// The confirmed entries survive; only the draft is dropped.
func (m *Machine) resetDraft(sess *session) Reply {
	logger.Warn(context.Background(), "fsm", "fsm.draft_reset",
		slog.String("state", string(sess.state)),
	)
	if sess.workout == nil {
		sess.workout = newInProgressWorkout()
	}
	sess.workout.Draft = DraftEmpty{}
	sess.state = StateChoosingGroup
	return Reply{menuMsg(msgChooseGroup, groupMenuRows(m.catalog))}
}
