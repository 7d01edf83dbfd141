package tui

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/tasker/internal/models"
)

var (
	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	importanceLow    = lipgloss.NewStyle().Foreground(successColor)
	importanceMedium = lipgloss.NewStyle().Foreground(warningColor)
	importanceHigh   = lipgloss.NewStyle().Foreground(errorColor)
	importanceOdd    = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	overdueStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
)

func formatImportance(importance int) string {
	label := fmt.Sprintf("● %d", importance)
	switch importance {
	case 1:
		return importanceLow.Render(label)
	case 2:
		return importanceMedium.Render(label)
	case 3:
		return importanceHigh.Render(label)
	default:
		return importanceOdd.Render(label + "?")
	}
}

func formatDue(due time.Time, layout string, now time.Time) string {
	s := due.Format(layout)
	today := models.Date(now.Year(), now.Month(), now.Day())
	if due.Before(today) {
		return overdueStyle.Render(s + " overdue")
	}
	return s
}

func renderRow(pos int, task models.Task, layout string, selected bool, now time.Time) string {
	if selected {
		return selectedStyle.Render(fmt.Sprintf("▶ %d. %s | %d | %s", pos, task.Title, task.Importance, task.DueDate.Format(layout)))
	}
	return taskItemStyle.Render(fmt.Sprintf("  %d. %s  %s  %s", pos, task.Title, formatImportance(task.Importance), formatDue(task.DueDate, layout, now)))
}

func renderActive(tasks iter.Seq2[int, models.Task], layout string, selectedIdx int, now time.Time) string {
	var lines []string
	for pos, task := range tasks {
		lines = append(lines, renderRow(pos, task, layout, pos-1 == selectedIdx, now))
	}
	if len(lines) == 0 {
		return "\n  No tasks. Type: add <title> ; <importance> ; <date> to create one.\n"
	}
	return strings.Join(lines, "\n")
}

// renderTaskSeq numbers a plain sequence from 1. selectedIdx < 0 disables highlighting.
func renderTaskSeq(tasks iter.Seq[models.Task], layout string, selectedIdx int, now time.Time, empty string) string {
	var lines []string
	pos := 0
	for task := range tasks {
		pos++
		lines = append(lines, renderRow(pos, task, layout, pos-1 == selectedIdx, now))
	}
	if len(lines) == 0 {
		return "\n  " + empty + "\n"
	}
	return strings.Join(lines, "\n")
}

func renderJournal(entries []models.JournalEntry) string {
	if len(entries) == 0 {
		return "\n  No activity yet.\n"
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cyanColor)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		headerStyle.Render(fmt.Sprintf("%-8s", "TIME")),
		headerStyle.Render(fmt.Sprintf("%-14s", "ACTION")),
		headerStyle.Render("OUTCOME"),
	))
	for _, e := range entries {
		outcome := lipgloss.NewStyle().Foreground(successColor).Render(e.Outcome)
		if e.Outcome != models.OutcomeSuccess {
			outcome = lipgloss.NewStyle().Foreground(errorColor).Render(e.Outcome)
			if e.Details != "" {
				outcome += " " + helpStyle.Render(truncate(e.Details, 50))
			}
		}
		b.WriteString(fmt.Sprintf("  %-8s  %-14s  %s\n", e.Timestamp.Local().Format("15:04:05"), e.Action, outcome))
	}
	return b.String()
}
