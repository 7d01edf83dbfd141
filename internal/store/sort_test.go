package store

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentz26/tasker/internal/models"
)

func TestSortEmptyAndSingle(t *testing.T) {
	s := NewActiveStore()
	s.SortByImportance()
	s.SortByDueDate()
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Add(newTask("only", 2, 3)))
	s.SortByImportance()
	s.SortByDueDate()
	assertTitles(t, s, []string{"only"})
}

func TestSortScenario(t *testing.T) {
	build := func() *ActiveStore {
		s := NewActiveStore()
		require.NoError(t, s.Add(models.NewTask("Write report", 2, models.Date(2024, 5, 10))))
		require.NoError(t, s.Add(models.NewTask("Fix bug", 3, models.Date(2024, 5, 5))))
		require.NoError(t, s.Add(models.NewTask("Clean desk", 1, models.Date(2024, 5, 20))))
		return s
	}

	byImportance := build()
	byImportance.SortByImportance()
	assertTitles(t, byImportance, []string{"Clean desk", "Write report", "Fix bug"})

	byDate := build()
	byDate.SortByDueDate()
	assertTitles(t, byDate, []string{"Fix bug", "Write report", "Clean desk"})
}

func TestSortByImportanceIsStable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		s := NewActiveStore()
		n := 1 + rng.Intn(MaxActiveTasks)
		for i := 0; i < n; i++ {
			require.NoError(t, s.Add(newTask(fmt.Sprintf("t%03d", i), 1+rng.Intn(3), 1+rng.Intn(28))))
		}
		want := snapshot(s)
		sort.SliceStable(want, func(i, j int) bool { return want[i].Importance < want[j].Importance })

		s.SortByImportance()

		assert.Equal(t, want, snapshot(s), "round %d", round)
	}
}

func TestSortByDueDateOrdersAndPermutes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 50; round++ {
		s := NewActiveStore()
		n := 1 + rng.Intn(MaxActiveTasks)
		for i := 0; i < n; i++ {
			require.NoError(t, s.Add(newTask(fmt.Sprintf("t%03d", i), 1+rng.Intn(3), 1+rng.Intn(28))))
		}
		before := snapshot(s)

		s.SortByDueDate()
		after := snapshot(s)

		require.Len(t, after, len(before))
		for i := 1; i < len(after); i++ {
			assert.False(t, after[i].DueDate.Before(after[i-1].DueDate),
				"round %d: %s before %s", round, after[i].DueDate, after[i-1].DueDate)
		}
		assert.ElementsMatch(t, before, after, "round %d", round)
	}
}

func TestSortByDueDateSortedInput(t *testing.T) {
	s := NewActiveStore()
	for i := 0; i < MaxActiveTasks; i++ {
		require.NoError(t, s.Add(newTask(fmt.Sprintf("t%03d", i), 1, 1+i%28)))
	}
	s.SortByDueDate()
	s.SortByDueDate()

	tasks := snapshot(s)
	for i := 1; i < len(tasks); i++ {
		require.False(t, tasks[i].DueDate.Before(tasks[i-1].DueDate))
	}
}

func snapshot(s *ActiveStore) []models.Task {
	out := make([]models.Task, 0, s.Len())
	for _, task := range s.List() {
		out = append(out, task)
	}
	return out
}
