package workout

import (
	"fmt"
	"strconv"
	"strings"
)

const historyDateLayout = "02.01.2006 15:04"

// FormatWeight prints a weight without trailing zeros ("50", "12.5").
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// FormatHistory renders the history listing, most recent session first.
func FormatHistory(sessions []WorkoutSession) string {
	var b strings.Builder
	b.WriteString("📅 Последние тренировки:\n\n")
	for i, sess := range sessions {
		fmt.Fprintf(&b, "%d. 💪 %s\n🗓 %s\n", i+1, sess.MuscleGroup, sess.CompletedAt.Format(historyDateLayout))
		for _, e := range sess.Entries {
			fmt.Fprintf(&b, " - %s | %d сетов × %d повт. @ %s кг\n", e.Name, e.Sets, e.Reps, FormatWeight(e.Weight))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatStats renders the textual statistics block used as the chart caption.
func FormatStats(r *StatsReport) string {
	return fmt.Sprintf(
		"📈 Статистика по упражнению '%s':\n"+
			"📌 Максимальный вес: %s кг\n"+
			"📌 Средний вес: %.1f кг\n"+
			"📌 Общее количество подходов: %d",
		r.Exercise, FormatWeight(r.MaxWeight), r.AverageWeight, r.TotalSets,
	)
}
