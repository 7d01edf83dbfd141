// Package tui provides the interactive terminal UI for tasker.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/tasker/internal/models"
	"github.com/fentz26/tasker/internal/tracker"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6366F1")
	successColor   = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	fgColor        = lipgloss.Color("#F9FAFB")
	cyanColor      = lipgloss.Color("#06B6D4")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

type tab int

const (
	tabActive tab = iota
	tabCompleted
	tabUrgent
	tabLog
)

var tabNames = []string{"ACTIVE", "DONE", "URGENT", "LOG"}

// App is the main TUI application model.
type App struct {
	tracker     *tracker.Tracker
	layout      string
	input       textinput.Model
	viewport    viewport.Model
	suggestions *Suggestions
	width       int
	height      int
	tab         tab
	selectedIdx int
	showDetail  bool
	message     string
	now         func() time.Time
}

// New creates a new TUI application over an existing tracker.
func New(t *tracker.Tracker, dateLayout string) *App {
	if dateLayout == "" {
		dateLayout = models.DefaultDateLayout
	}

	ti := textinput.New()
	ti.Placeholder = "Type: add <title> ; <importance> ; <date> | done | rm | sort due | / for commands"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 80

	vp := viewport.New(80, 20)

	return &App{
		tracker:     t,
		layout:      dateLayout,
		input:       ti,
		viewport:    vp,
		suggestions: NewSuggestions(),
		width:       80,
		height:      24,
		now:         time.Now,
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Tracker mutations run here, on the program's
// event loop, never inside a tea.Cmd.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "esc":
			a.showDetail = false
			a.input.SetValue("")
			a.suggestions.Update("")
			return a, nil

		case "up":
			if a.suggestions.IsVisible() {
				a.suggestions.Prev()
			} else if a.selectedIdx > 0 {
				a.selectedIdx--
			}
			return a, nil

		case "down":
			if a.suggestions.IsVisible() {
				a.suggestions.Next()
			} else if a.selectedIdx < a.rowCount()-1 {
				a.selectedIdx++
			}
			return a, nil

		case "tab":
			if a.acceptSuggestion() {
				return a, nil
			}
			a.tab = (a.tab + 1) % tab(len(tabNames))
			a.selectedIdx = 0
			a.showDetail = false
			return a, nil

		case "enter":
			if !a.suggestions.Matches(a.input.Value()) && a.acceptSuggestion() {
				return a, nil
			}
			line := strings.TrimSpace(a.input.Value())
			if line == "" {
				if a.tab == tabActive && a.rowCount() > 0 {
					a.showDetail = !a.showDetail
				}
				return a, nil
			}
			a.input.SetValue("")
			a.suggestions.Update("")
			message, cmd := a.execute(line)
			a.message = message
			a.clampSelection()
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 4
		a.viewport.Width = msg.Width
		a.viewport.Height = max(5, msg.Height-10)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	a.suggestions.Update(a.input.Value())

	return a, tea.Batch(cmds...)
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	counts := a.tracker.Counts()
	header := titleStyle.Render("TASKER")
	header += "  " + lipgloss.NewStyle().Foreground(cyanColor).Render(
		fmt.Sprintf("[%d/%d active · %d done · %d urgent]", counts.Active, counts.Capacity, counts.Completed, counts.Urgent))
	b.WriteString(header + "\n")

	var tabs []string
	for i, name := range tabNames {
		if tab(i) == a.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")
	b.WriteString(strings.Repeat("─", a.width) + "\n")

	a.viewport.SetContent(a.renderBody())
	a.scrollToSelection()
	b.WriteString(a.viewport.View())

	if a.showDetail {
		if task, ok := a.selectedActive(); ok {
			b.WriteString("\n" + renderTaskDetail(task, a.layout, a.now()))
		}
	}

	// Message bar
	if a.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(successColor)
		if strings.HasPrefix(a.message, "Error") {
			msgStyle = lipgloss.NewStyle().Foreground(errorColor)
		}
		b.WriteString("\n" + msgStyle.Render(a.message))
	} else {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Render(a.input.View()))

	if a.suggestions.IsVisible() {
		b.WriteString("\n")
		b.WriteString(a.suggestions.Render(a.width))
	}
	b.WriteString("\n")

	status := fmt.Sprintf(" %s: %d | ↑↓:nav | Tab:switch view | Enter:details/command | Esc:clear | Ctrl+C:quit",
		strings.ToLower(tabNames[a.tab]), a.rowCount())
	b.WriteString(statusBarStyle.Width(a.width).Render(status))

	return b.String()
}

func (a *App) renderBody() string {
	switch a.tab {
	case tabCompleted:
		return renderTaskSeq(a.tracker.Completed(), a.layout, -1, a.now(), "No completed tasks yet.")
	case tabUrgent:
		return renderTaskSeq(a.tracker.Urgent(), a.layout, a.selectedIdx, a.now(), "No urgent tasks. Type: urgent <title> ; <importance> ; <date>")
	case tabLog:
		entries, err := a.tracker.Journal(a.viewport.Height)
		if err != nil {
			return "\n  " + helpStyle.Render("Activity log is disabled.")
		}
		return renderJournal(entries)
	default:
		return renderActive(a.tracker.Active(), a.layout, a.selectedIdx, a.now())
	}
}

// rowCount is the number of selectable rows on the current tab.
func (a *App) rowCount() int {
	counts := a.tracker.Counts()
	switch a.tab {
	case tabActive:
		return counts.Active
	case tabUrgent:
		return counts.Urgent
	default:
		return 0
	}
}

func (a *App) clampSelection() {
	if n := a.rowCount(); a.selectedIdx >= n {
		a.selectedIdx = max(0, n-1)
	}
	if a.rowCount() == 0 {
		a.showDetail = false
	}
}

func (a *App) scrollToSelection() {
	if a.selectedIdx < a.viewport.YOffset {
		a.viewport.SetYOffset(a.selectedIdx)
	} else if a.selectedIdx >= a.viewport.YOffset+a.viewport.Height {
		a.viewport.SetYOffset(a.selectedIdx - a.viewport.Height + 1)
	}
}

func (a *App) selectedActive() (models.Task, bool) {
	for pos, task := range a.tracker.Active() {
		if pos == a.selectedIdx+1 {
			return task, true
		}
	}
	return models.Task{}, false
}

func (a *App) acceptSuggestion() bool {
	if !a.suggestions.IsVisible() {
		return false
	}
	if selected := a.suggestions.Selected(); selected != nil {
		a.input.SetValue(selected.Text + " ")
		a.input.CursorEnd()
		a.suggestions.Update("")
	}
	return true
}
