package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/tasker/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	detailPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(secondaryColor).
				Padding(0, 1)
)

// renderTaskDetail shows the selected active task with the time left until it is due.
func renderTaskDetail(task models.Task, layout string, now time.Time) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(task.Title))
	b.WriteString("\n")
	b.WriteString(renderField("Importance", formatImportance(task.Importance)))
	b.WriteString(renderField("Due", task.DueDate.Format(layout)))
	b.WriteString(renderField("Left", daysLeft(task.DueDate, now)))

	return detailPanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderField(label, value string) string {
	return fmt.Sprintf("%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}

// daysLeft counts calendar days between today and due.
func daysLeft(due, now time.Time) string {
	today := models.Date(now.Year(), now.Month(), now.Day())
	days := int(due.Sub(today).Hours() / 24)
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day"
	case days > 1:
		return fmt.Sprintf("%d days", days)
	case days == -1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", -days)
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
