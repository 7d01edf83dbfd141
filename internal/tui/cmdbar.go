package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fentz26/tasker/internal/store"
	"github.com/fentz26/tasker/internal/tracker"
)

const usageAdd = "Usage: add <title> ; <importance> ; <date>"

// execute runs one command line against the tracker and returns the message to
// show plus an optional command for the program.
func (a *App) execute(input string) (string, tea.Cmd) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "/")
	name, rest, _ := strings.Cut(input, " ")
	name = strings.ToLower(name)
	rest = strings.TrimSpace(rest)

	switch name {
	case "add", "urgent":
		in, ok := splitTaskFields(rest)
		if !ok {
			return usageAdd, nil
		}
		task, err := tracker.ParseTask(in, a.layout)
		if err != nil {
			return errorMessage(err), nil
		}
		if name == "urgent" {
			a.tracker.AddUrgent(task)
			a.tab = tabUrgent
			return fmt.Sprintf("✓ Queued urgent task: %s", task.Title), nil
		}
		if err := a.tracker.AddTask(task); err != nil {
			return errorMessage(err), nil
		}
		a.tab = tabActive
		return fmt.Sprintf("✓ Added task: %s", task.Title), nil

	case "done", "complete":
		pos, err := a.position(rest)
		if err != nil {
			return errorMessage(err), nil
		}
		task, err := a.tracker.CompleteTask(pos)
		if err != nil {
			return errorMessage(err), nil
		}
		return fmt.Sprintf("✓ Completed: %s", task.Title), nil

	case "rm", "remove":
		pos, err := a.position(rest)
		if err != nil {
			return errorMessage(err), nil
		}
		task, err := a.tracker.RemoveTask(pos)
		if err != nil {
			return errorMessage(err), nil
		}
		return fmt.Sprintf("✓ Removed: %s", task.Title), nil

	case "sort":
		switch strings.ToLower(rest) {
		case "importance", "imp", "priority":
			a.tracker.SortByImportance()
			a.tab = tabActive
			return "✓ Sorted by importance", nil
		case "due", "date":
			a.tracker.SortByDueDate()
			a.tab = tabActive
			return "✓ Sorted by due date", nil
		default:
			return "Usage: sort importance|due", nil
		}

	case "log":
		a.tab = tabLog
		return "", nil

	case "help":
		return "Commands: add, urgent, done [n], rm [n], sort importance|due, log, q", nil

	case "q", "quit", "exit":
		return "", tea.Quit

	default:
		return fmt.Sprintf("Unknown: %s (try: add, done, rm, sort, urgent)", name), nil
	}
}

// position resolves an explicit 1-based number, or the selected active row.
func (a *App) position(arg string) (int, error) {
	if arg == "" {
		if a.tab != tabActive {
			return 0, fmt.Errorf("%w: give a task number or select one on the ACTIVE tab", tracker.ErrInvalidInput)
		}
		return a.selectedIdx + 1, nil
	}
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: task number %q is not a number", tracker.ErrInvalidInput, arg)
	}
	return pos, nil
}

// splitTaskFields reads "title ; importance ; date".
func splitTaskFields(s string) (tracker.TaskInput, bool) {
	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return tracker.TaskInput{}, false
	}
	return tracker.TaskInput{
		Title:      strings.TrimSpace(parts[0]),
		Importance: strings.TrimSpace(parts[1]),
		DueDate:    strings.TrimSpace(parts[2]),
	}, true
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrCapacityExceeded):
		return fmt.Sprintf("Error: task list is full (%d tasks)", store.MaxActiveTasks)
	case errors.Is(err, store.ErrOutOfRange):
		return "Error: no task at that position"
	default:
		return "Error: " + err.Error()
	}
}
