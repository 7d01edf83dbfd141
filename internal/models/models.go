// Package models defines the core domain types for tasker.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayout is the layout used to read and print due dates.
const DefaultDateLayout = "2006-01-02"

// Importance bounds shown to the user. The stores do not enforce them.
const (
	ImportanceLow  = 1
	ImportanceHigh = 3
)

// Task is a single tracked item. It has no ID; containers identify it by position.
type Task struct {
	Title      string    `json:"title"`
	Importance int       `json:"importance"`
	DueDate    time.Time `json:"due_date"`
}

// NewTask builds a task, truncating the due date to a calendar day.
func NewTask(title string, importance int, due time.Time) Task {
	return Task{
		Title:      title,
		Importance: importance,
		DueDate:    Date(due.Year(), due.Month(), due.Day()),
	}
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date using layout (DefaultDateLayout when empty).
func ParseDate(layout, value string) (time.Time, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return Date(t.Year(), t.Month(), t.Day()), nil
}

// ImportanceInRange reports whether the importance lies in [ImportanceLow, ImportanceHigh].
func (t Task) ImportanceInRange() bool {
	return t.Importance >= ImportanceLow && t.Importance <= ImportanceHigh
}

// Line renders the task the way every list view shows it.
func (t Task) Line(position int, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return fmt.Sprintf("%d. %s | Importance: %d | Due: %s", position, t.Title, t.Importance, t.DueDate.Format(layout))
}

// JournalEntry records a state-changing operation for the activity log.
type JournalEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	InputsHash string    `json:"inputs_hash"`
	Outcome    string    `json:"outcome"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Journal outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
