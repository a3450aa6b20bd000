package workout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "50", FormatWeight(50))
	assert.Equal(t, "12.5", FormatWeight(12.5))
	assert.Equal(t, "0", FormatWeight(0))
}

func TestFormatHistory(t *testing.T) {
	sessions := []WorkoutSession{
		{
			MuscleGroup: "Спина",
			CompletedAt: time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC),
			Entries: []ExerciseEntry{
				{Name: "Подтягивания", Sets: 3, Reps: 10, Weight: 0},
				{Name: "Тяга штанги", Sets: 4, Reps: 8, Weight: 62.5},
			},
		},
	}

	got := FormatHistory(sessions)
	assert.Contains(t, got, "📅 Последние тренировки:")
	assert.Contains(t, got, "1. 💪 Спина")
	assert.Contains(t, got, "🗓 01.06.2025 18:30")
	assert.Contains(t, got, " - Подтягивания | 3 сетов × 10 повт. @ 0 кг")
	assert.Contains(t, got, " - Тяга штанги | 4 сетов × 8 повт. @ 62.5 кг")
}

func TestFormatStats(t *testing.T) {
	got := FormatStats(&StatsReport{
		Exercise:      "Подтягивания",
		MaxWeight:     60,
		AverageWeight: 55,
		TotalSets:     9,
	})
	assert.Equal(t,
		"📈 Статистика по упражнению 'Подтягивания':\n"+
			"📌 Максимальный вес: 60 кг\n"+
			"📌 Средний вес: 55.0 кг\n"+
			"📌 Общее количество подходов: 9",
		got,
	)
}
