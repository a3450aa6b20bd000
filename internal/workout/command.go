package workout

// Button labels shown on reply keyboards. Incoming text is matched against
// these literally; Telegram sends button presses as plain messages.
const (
	BtnStartWorkout = "🏋️‍♂️ Начать тренировку"
	BtnHistory      = "📜 История тренировок"
	BtnStats        = "📊 Статистика прогресса"
	BtnFinish       = "🏁 Завершить тренировку"
	BtnCancel       = "❌ Отменить"
	BtnAddCustom    = "➕ Добавить своё упражнение"
	BtnBack         = "⬅️ Назад"
)

// Command is the semantic class of one incoming message. Raw text is
// classified exactly once per message; the state machine then dispatches
// on this closed set instead of string literals.
type Command int

const (
	// CmdText is any input that is not a recognized menu button; its
	// meaning depends on the current state.
	CmdText Command = iota
	// CmdStartWorkout begins (or resumes) an in-progress workout.
	CmdStartWorkout
	// CmdCancel discards the in-progress workout.
	CmdCancel
	// CmdFinish finalizes the in-progress workout.
	CmdFinish
	// CmdHistory requests the workout history listing.
	CmdHistory
	// CmdStats enters the per-exercise statistics flow.
	CmdStats
	// CmdBack leaves the statistics flow.
	CmdBack
	// CmdAddCustom switches exercise selection to free-text name entry.
	CmdAddCustom
)

// Classify maps raw message text to its command class.
func Classify(text string) Command {
	switch text {
	case BtnStartWorkout:
		return CmdStartWorkout
	case BtnCancel:
		return CmdCancel
	case BtnFinish:
		return CmdFinish
	case BtnHistory:
		return CmdHistory
	case BtnStats:
		return CmdStats
	case BtnBack:
		return CmdBack
	case BtnAddCustom:
		return CmdAddCustom
	}
	return CmdText
}
