// Package store provides the in-memory task containers for tasker.
package store

import (
	"fmt"
	"iter"

	"github.com/fentz26/tasker/internal/models"
)

// MaxActiveTasks is the number of pending tasks the active store accepts.
const MaxActiveTasks = 100

// ActiveStore holds pending tasks in display order.
// Occupied slots are always contiguous from index 0.
type ActiveStore struct {
	tasks    []models.Task
	capacity int
}

// NewActiveStore creates an empty store limited to MaxActiveTasks.
func NewActiveStore() *ActiveStore {
	return &ActiveStore{
		tasks:    make([]models.Task, 0, MaxActiveTasks),
		capacity: MaxActiveTasks,
	}
}

// Len returns the number of pending tasks.
func (s *ActiveStore) Len() int {
	return len(s.tasks)
}

// Capacity returns the maximum number of pending tasks.
func (s *ActiveStore) Capacity() int {
	return s.capacity
}

// Add appends a task at the next free slot.
func (s *ActiveStore) Add(task models.Task) error {
	if len(s.tasks) >= s.capacity {
		return fmt.Errorf("add %q: %w", task.Title, ErrCapacityExceeded)
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// List yields (1-based position, task) pairs in current order.
func (s *ActiveStore) List() iter.Seq2[int, models.Task] {
	return func(yield func(int, models.Task) bool) {
		for i, t := range s.tasks {
			if !yield(i+1, t) {
				return
			}
		}
	}
}

// At returns the task at a 1-based position.
func (s *ActiveStore) At(pos int) (models.Task, error) {
	if err := s.checkPosition(pos); err != nil {
		return models.Task{}, err
	}
	return s.tasks[pos-1], nil
}

// RemoveAt deletes the task at a 1-based position, shifting later tasks up by one.
func (s *ActiveStore) RemoveAt(pos int) (models.Task, error) {
	if err := s.checkPosition(pos); err != nil {
		return models.Task{}, err
	}
	i := pos - 1
	removed := s.tasks[i]
	copy(s.tasks[i:], s.tasks[i+1:])
	s.tasks[len(s.tasks)-1] = models.Task{}
	s.tasks = s.tasks[:len(s.tasks)-1]
	return removed, nil
}

// CompleteAt removes the task at pos and prepends it to history.
// The bounds check runs before any mutation, so on error neither container changes.
func (s *ActiveStore) CompleteAt(pos int, history *History) (models.Task, error) {
	task, err := s.RemoveAt(pos)
	if err != nil {
		return models.Task{}, err
	}
	history.Prepend(task)
	return task, nil
}

func (s *ActiveStore) checkPosition(pos int) error {
	if pos < 1 || pos > len(s.tasks) {
		return fmt.Errorf("position %d not in [1, %d]: %w", pos, len(s.tasks), ErrOutOfRange)
	}
	return nil
}
