package workout

// Message is one outbound message produced by the state machine. The
// transport adapter renders Menu as a reply keyboard and, when Stats is
// set, draws the chart from Stats.Series using Text as the caption.
type Message struct {
	Text  string
	Menu  [][]string
	Stats *StatsReport
}

// Reply is the ordered list of messages emitted for one incoming message.
type Reply []Message

func textMsg(text string) Message {
	return Message{Text: text}
}

func menuMsg(text string, rows [][]string) Message {
	return Message{Text: text, Menu: rows}
}

func statsMsg(report *StatsReport) Message {
	return Message{Text: FormatStats(report), Stats: report}
}

// MainMenuRows is the resting-state keyboard.
func MainMenuRows() [][]string {
	return [][]string{
		{BtnStartWorkout},
		{BtnHistory},
		{BtnStats},
	}
}

func groupMenuRows(catalog *Catalog) [][]string {
	rows := make([][]string, 0, len(catalog.GroupLabels())+2)
	for _, label := range catalog.GroupLabels() {
		rows = append(rows, []string{label})
	}
	rows = append(rows, []string{BtnFinish}, []string{BtnCancel})
	return rows
}

func exerciseMenuRows(group MuscleGroup) [][]string {
	rows := make([][]string, 0, len(group.Exercises)+3)
	for _, ex := range group.Exercises {
		rows = append(rows, []string{ex})
	}
	rows = append(rows,
		[]string{BtnAddCustom},
		[]string{BtnFinish},
		[]string{BtnCancel},
	)
	return rows
}

func statsMenuRows(names []string) [][]string {
	rows := make([][]string, 0, len(names)+1)
	for _, name := range names {
		rows = append(rows, []string{name})
	}
	rows = append(rows, []string{BtnBack})
	return rows
}
