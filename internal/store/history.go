package store

import (
	"iter"

	"github.com/fentz26/tasker/internal/models"
)

type historyNode struct {
	task models.Task
	next *historyNode
}

// History is the append-at-front record of completed tasks, newest first.
// Entries are never removed or reordered.
type History struct {
	head *historyNode
	size int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Prepend makes task the new front entry.
func (h *History) Prepend(task models.Task) {
	h.head = &historyNode{task: task, next: h.head}
	h.size++
}

// Len returns the number of completed tasks.
func (h *History) Len() int {
	return h.size
}

// List yields completed tasks from most recent to oldest.
func (h *History) List() iter.Seq[models.Task] {
	return func(yield func(models.Task) bool) {
		for n := h.head; n != nil; n = n.next {
			if !yield(n.task) {
				return
			}
		}
	}
}
