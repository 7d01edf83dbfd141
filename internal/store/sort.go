package store

import "github.com/fentz26/tasker/internal/models"

// SortByImportance orders tasks by ascending importance with an adjacent-exchange
// sort. Only out-of-order neighbours are swapped, so equal importances keep their
// relative order.
func (s *ActiveStore) SortByImportance() {
	n := len(s.tasks)
	for swapped := true; swapped; n-- {
		swapped = false
		for i := 1; i < n; i++ {
			if s.tasks[i-1].Importance > s.tasks[i].Importance {
				s.tasks[i-1], s.tasks[i] = s.tasks[i], s.tasks[i-1]
				swapped = true
			}
		}
	}
}

// SortByDueDate orders tasks by ascending due date using quicksort with the last
// element of each range as pivot. Tasks sharing a date may be reordered.
func (s *ActiveStore) SortByDueDate() {
	quickSortByDate(s.tasks, 0, len(s.tasks)-1)
}

func quickSortByDate(tasks []models.Task, lo, hi int) {
	if lo >= hi {
		return
	}
	p := partitionByDate(tasks, lo, hi)
	quickSortByDate(tasks, lo, p-1)
	quickSortByDate(tasks, p+1, hi)
}

// partitionByDate moves every task strictly earlier than the pivot in front of it
// and returns the pivot's final index.
func partitionByDate(tasks []models.Task, lo, hi int) int {
	pivot := tasks[hi].DueDate
	i := lo
	for j := lo; j < hi; j++ {
		if tasks[j].DueDate.Before(pivot) {
			tasks[i], tasks[j] = tasks[j], tasks[i]
			i++
		}
	}
	tasks[i], tasks[hi] = tasks[hi], tasks[i]
	return i
}
