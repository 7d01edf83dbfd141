package tracker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentz26/tasker/internal/audit"
	"github.com/fentz26/tasker/internal/models"
	"github.com/fentz26/tasker/internal/store"
)

func TestParseTask(t *testing.T) {
	tests := []struct {
		name    string
		in      TaskInput
		layout  string
		want    models.Task
		wantErr string
	}{
		{
			name: "valid",
			in:   TaskInput{Title: " Write report ", Importance: "2", DueDate: "2024-05-10"},
			want: models.NewTask("Write report", 2, models.Date(2024, 5, 10)),
		},
		{
			name:   "custom layout",
			in:     TaskInput{Title: "Fix bug", Importance: "3", DueDate: "05/05/2024"},
			layout: "02/01/2006",
			want:   models.NewTask("Fix bug", 3, models.Date(2024, 5, 5)),
		},
		{
			name: "out of range importance accepted",
			in:   TaskInput{Title: "Odd", Importance: "7", DueDate: "2024-05-10"},
			want: models.NewTask("Odd", 7, models.Date(2024, 5, 10)),
		},
		{
			name:    "missing title",
			in:      TaskInput{Title: "  ", Importance: "1", DueDate: "2024-05-10"},
			wantErr: "title is required",
		},
		{
			name:    "missing due date",
			in:      TaskInput{Title: "x", Importance: "1"},
			wantErr: "due date is required",
		},
		{
			name:    "non-numeric importance",
			in:      TaskInput{Title: "x", Importance: "high", DueDate: "2024-05-10"},
			wantErr: "not a number",
		},
		{
			name:    "malformed date",
			in:      TaskInput{Title: "x", Importance: "1", DueDate: "2024-13-40"},
			wantErr: "parse date",
		},
		{
			name:    "title too long",
			in:      TaskInput{Title: strings.Repeat("a", 257), Importance: "1", DueDate: "2024-05-10"},
			wantErr: "longer than 256",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTask(tt.in, tt.layout)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompleteTaskMovesOneTask(t *testing.T) {
	tr := New(nil)
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, tr.AddTask(models.NewTask(title, 1, models.Date(2024, 5, 1))))
	}

	done, err := tr.CompleteTask(3)
	require.NoError(t, err)
	assert.Equal(t, "c", done.Title)

	counts := tr.Counts()
	assert.Equal(t, 2, counts.Active)
	assert.Equal(t, 1, counts.Completed)
	assert.Equal(t, store.MaxActiveTasks, counts.Capacity)

	_, err = tr.CompleteTask(3)
	assert.ErrorIs(t, err, store.ErrOutOfRange)
	assert.Equal(t, 1, tr.Counts().Completed)
}

func TestEndToEndScenario(t *testing.T) {
	tr := New(nil)
	inputs := []TaskInput{
		{Title: "Write report", Importance: "2", DueDate: "2024-05-10"},
		{Title: "Fix bug", Importance: "3", DueDate: "2024-05-05"},
		{Title: "Clean desk", Importance: "1", DueDate: "2024-05-20"},
	}
	for _, in := range inputs {
		task, err := ParseTask(in, "")
		require.NoError(t, err)
		require.NoError(t, tr.AddTask(task))
	}

	tr.SortByDueDate()
	assert.Equal(t, []string{"Fix bug", "Write report", "Clean desk"}, activeTitles(tr))

	tr.SortByImportance()
	assert.Equal(t, []string{"Clean desk", "Write report", "Fix bug"}, activeTitles(tr))

	tr.AddUrgent(models.NewTask("Call plumber", 3, models.Date(2024, 5, 1)))
	tr.AddUrgent(models.NewTask("Pay rent", 3, models.Date(2024, 5, 2)))
	var urgent []string
	for task := range tr.Urgent() {
		urgent = append(urgent, task.Title)
	}
	assert.Equal(t, []string{"Call plumber", "Pay rent"}, urgent)
}

func TestJournalRecordsMutations(t *testing.T) {
	j, err := audit.Open(audit.MemoryDSN)
	require.NoError(t, err)
	defer j.Close()

	tr := New(j)
	require.NoError(t, tr.AddTask(models.NewTask("a", 1, models.Date(2024, 5, 1))))
	tr.AddUrgent(models.NewTask("u", 3, models.Date(2024, 5, 1)))
	tr.SortByImportance()
	_, err = tr.RemoveTask(5)
	require.Error(t, err)
	_, err = tr.CompleteTask(1)
	require.NoError(t, err)

	entries, err := tr.Journal(0)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	actions := make([]string, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	assert.Equal(t, []string{ActionComplete, ActionRemove, ActionSort, ActionUrgent, ActionAdd}, actions)
	assert.Equal(t, models.OutcomeError, entries[1].Outcome)
	assert.Contains(t, entries[1].Details, "out of range")
}

func TestJournalUnavailable(t *testing.T) {
	tr := New(nil)
	_, err := tr.Journal(10)
	assert.ErrorIs(t, err, ErrJournalUnavailable)
}

func activeTitles(tr *Tracker) []string {
	var titles []string
	for _, task := range tr.Active() {
		titles = append(titles, task.Title)
	}
	return titles
}
