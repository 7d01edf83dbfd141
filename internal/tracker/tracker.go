// Package tracker owns the task containers and is the single entry point the
// interaction surfaces call into.
package tracker

import (
	"errors"
	"iter"
	"log"

	"github.com/fentz26/tasker/internal/models"
	"github.com/fentz26/tasker/internal/store"
)

// Recorder writes journal entries for state-changing operations.
type Recorder interface {
	Record(action string, inputs any, outcome, details string) (*models.JournalEntry, error)
}

// Lister returns recorded journal entries, newest first.
type Lister interface {
	Entries(limit int) ([]models.JournalEntry, error)
}

// Journal actions.
const (
	ActionAdd      = "task.add"
	ActionUrgent   = "urgent.add"
	ActionRemove   = "task.remove"
	ActionComplete = "task.complete"
	ActionSort     = "task.sort"
)

// ErrJournalUnavailable is returned by Journal when no listable recorder is configured.
var ErrJournalUnavailable = errors.New("activity journal not available")

// Counts summarizes the size of each container.
type Counts struct {
	Active    int
	Capacity  int
	Completed int
	Urgent    int
}

// Tracker holds the active store, completed history and urgent queue for one session.
// It is not safe for concurrent use.
type Tracker struct {
	active   *store.ActiveStore
	history  *store.History
	urgent   *store.UrgentQueue
	recorder Recorder
}

// New creates a tracker with empty containers. recorder may be nil.
func New(recorder Recorder) *Tracker {
	return &Tracker{
		active:   store.NewActiveStore(),
		history:  store.NewHistory(),
		urgent:   store.NewUrgentQueue(),
		recorder: recorder,
	}
}

// AddTask appends a task to the active store.
func (t *Tracker) AddTask(task models.Task) error {
	warnImportance(task)
	err := t.active.Add(task)
	t.record(ActionAdd, task, err)
	return err
}

// AddUrgent appends a task to the urgent queue.
func (t *Tracker) AddUrgent(task models.Task) {
	warnImportance(task)
	t.urgent.Enqueue(task)
	t.record(ActionUrgent, task, nil)
}

// RemoveTask deletes the active task at a 1-based position.
func (t *Tracker) RemoveTask(pos int) (models.Task, error) {
	task, err := t.active.RemoveAt(pos)
	t.record(ActionRemove, map[string]int{"position": pos}, err)
	return task, err
}

// CompleteTask moves the active task at a 1-based position to the front of the history.
func (t *Tracker) CompleteTask(pos int) (models.Task, error) {
	task, err := t.active.CompleteAt(pos, t.history)
	t.record(ActionComplete, map[string]int{"position": pos}, err)
	return task, err
}

// SortByImportance reorders active tasks by ascending importance.
func (t *Tracker) SortByImportance() {
	t.active.SortByImportance()
	t.record(ActionSort, map[string]string{"key": "importance"}, nil)
}

// SortByDueDate reorders active tasks by ascending due date.
func (t *Tracker) SortByDueDate() {
	t.active.SortByDueDate()
	t.record(ActionSort, map[string]string{"key": "due"}, nil)
}

// Active yields (position, task) pairs from the active store.
func (t *Tracker) Active() iter.Seq2[int, models.Task] {
	return t.active.List()
}

// Completed yields completed tasks, most recent first.
func (t *Tracker) Completed() iter.Seq[models.Task] {
	return t.history.List()
}

// Urgent yields urgent tasks, oldest first.
func (t *Tracker) Urgent() iter.Seq[models.Task] {
	return t.urgent.List()
}

// Counts returns the current container sizes.
func (t *Tracker) Counts() Counts {
	return Counts{
		Active:    t.active.Len(),
		Capacity:  t.active.Capacity(),
		Completed: t.history.Len(),
		Urgent:    t.urgent.Len(),
	}
}

// Journal returns up to limit journal entries, newest first.
func (t *Tracker) Journal(limit int) ([]models.JournalEntry, error) {
	l, ok := t.recorder.(Lister)
	if !ok {
		return nil, ErrJournalUnavailable
	}
	return l.Entries(limit)
}

func (t *Tracker) record(action string, inputs any, opErr error) {
	if t.recorder == nil {
		return
	}
	outcome, details := models.OutcomeSuccess, ""
	if opErr != nil {
		outcome, details = models.OutcomeError, opErr.Error()
	}
	if _, err := t.recorder.Record(action, inputs, outcome, details); err != nil {
		log.Printf("Warning: failed to journal %s: %v", action, err)
	}
}

// warnImportance logs importances outside the displayed range. They are still accepted.
func warnImportance(task models.Task) {
	if !task.ImportanceInRange() {
		log.Printf("Warning: task %q has importance %d outside [%d, %d]",
			task.Title, task.Importance, models.ImportanceLow, models.ImportanceHigh)
	}
}
