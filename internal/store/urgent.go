package store

import (
	"iter"

	"github.com/fentz26/tasker/internal/models"
)

// UrgentQueue keeps urgent tasks in arrival order. It has no dequeue: urgent
// tasks stay for the life of the process.
type UrgentQueue struct {
	tasks []models.Task
}

// NewUrgentQueue creates an empty queue.
func NewUrgentQueue() *UrgentQueue {
	return &UrgentQueue{}
}

// Enqueue appends task at the back.
func (q *UrgentQueue) Enqueue(task models.Task) {
	q.tasks = append(q.tasks, task)
}

// Len returns the number of queued tasks.
func (q *UrgentQueue) Len() int {
	return len(q.tasks)
}

// List yields queued tasks oldest first.
func (q *UrgentQueue) List() iter.Seq[models.Task] {
	return func(yield func(models.Task) bool) {
		for _, t := range q.tasks {
			if !yield(t) {
				return
			}
		}
	}
}
