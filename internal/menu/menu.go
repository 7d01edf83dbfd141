// Package menu provides the numbered text menu for tasker.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/tasker/internal/models"
	"github.com/fentz26/tasker/internal/store"
	"github.com/fentz26/tasker/internal/tracker"
)

// Choice is a numbered menu entry.
type Choice int

const (
	ChoiceExit Choice = iota
	ChoiceAdd
	ChoiceList
	ChoiceRemove
	ChoiceComplete
	ChoiceCompleted
	ChoiceSortImportance
	ChoiceSortDue
	ChoiceAddUrgent
	ChoiceUrgent
	ChoiceJournal
)

var choiceLabels = map[Choice]string{
	ChoiceAdd:            "Add task",
	ChoiceList:           "View tasks",
	ChoiceRemove:         "Remove task",
	ChoiceComplete:       "Mark task as completed",
	ChoiceCompleted:      "View completed tasks",
	ChoiceSortImportance: "Sort tasks by importance",
	ChoiceSortDue:        "Sort tasks by due date",
	ChoiceAddUrgent:      "Add urgent task",
	ChoiceUrgent:         "View urgent tasks",
	ChoiceJournal:        "View activity log",
	ChoiceExit:           "Exit",
}

// journalLimit caps how many activity log entries are printed.
const journalLimit = 20

// maxLineBytes is the longest input line the menu accepts.
const maxLineBytes = 64 << 10

var errLineTooLong = fmt.Errorf("%w: line longer than %d bytes", tracker.ErrInvalidInput, maxLineBytes)

// Options configures a Menu.
type Options struct {
	DateLayout string
	Color      bool
}

// Menu reads choices and field values line by line and prints tracker state.
type Menu struct {
	tracker *tracker.Tracker
	in      *bufio.Reader
	out     io.Writer
	layout  string

	lines   chan inputLine
	readErr error

	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// New creates a menu bound to a tracker.
func New(t *tracker.Tracker, in io.Reader, out io.Writer, opts Options) *Menu {
	layout := opts.DateLayout
	if layout == "" {
		layout = models.DefaultDateLayout
	}

	r := lipgloss.NewRenderer(out)
	m := &Menu{
		tracker: t,
		in:      bufio.NewReaderSize(in, maxLineBytes),
		out:     out,
		layout:  layout,
		heading: r.NewStyle(),
		success: r.NewStyle(),
		failure: r.NewStyle(),
		muted:   r.NewStyle(),
	}
	if opts.Color {
		m.heading = m.heading.Bold(true).Foreground(lipgloss.Color("#7C3AED"))
		m.success = m.success.Foreground(lipgloss.Color("#10B981"))
		m.failure = m.failure.Foreground(lipgloss.Color("#EF4444"))
		m.muted = m.muted.Foreground(lipgloss.Color("#6B7280"))
	}
	return m
}

// inputLine is one line read from the menu input.
type inputLine struct {
	text string
	err  error
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	m.lines = make(chan inputLine)
	go m.readLines(m.lines, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		line, err := m.prompt(ctx, "Choose an option: ")
		if err != nil {
			if err = m.skipInvalid(err); err != nil {
				return endOfInput(err)
			}
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			m.fail(fmt.Errorf("%w: %q is not a menu number", tracker.ErrInvalidInput, line))
			continue
		}

		if Choice(n) == ChoiceExit {
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		}
		if err := m.handle(ctx, Choice(n)); err != nil {
			return endOfInput(err)
		}
	}
}

// handle runs one menu choice. A non-nil error ends the menu loop.
func (m *Menu) handle(ctx context.Context, c Choice) error {
	switch c {
	case ChoiceAdd, ChoiceAddUrgent:
		task, err := m.readTask(ctx)
		if err != nil {
			return m.skipInvalid(err)
		}
		if c == ChoiceAddUrgent {
			m.tracker.AddUrgent(task)
			m.ok("Urgent task added.")
			return nil
		}
		if err := m.tracker.AddTask(task); err != nil {
			m.fail(err)
			return nil
		}
		m.ok("Task added.")

	case ChoiceList:
		m.printActive()

	case ChoiceRemove, ChoiceComplete:
		pos, err := m.readPosition(ctx)
		if err != nil {
			return m.skipInvalid(err)
		}
		if c == ChoiceRemove {
			task, err := m.tracker.RemoveTask(pos)
			if err != nil {
				m.fail(err)
				return nil
			}
			m.ok(fmt.Sprintf("Removed %q.", task.Title))
			return nil
		}
		task, err := m.tracker.CompleteTask(pos)
		if err != nil {
			m.fail(err)
			return nil
		}
		m.ok(fmt.Sprintf("Completed %q.", task.Title))

	case ChoiceCompleted:
		m.printSeq("Completed tasks", m.tracker.Completed(), "No completed tasks.")

	case ChoiceSortImportance:
		m.tracker.SortByImportance()
		m.ok("Tasks sorted by importance.")

	case ChoiceSortDue:
		m.tracker.SortByDueDate()
		m.ok("Tasks sorted by due date.")

	case ChoiceUrgent:
		m.printSeq("Urgent tasks", m.tracker.Urgent(), "No urgent tasks.")

	case ChoiceJournal:
		m.printJournal()

	default:
		m.fail(fmt.Errorf("%w: no menu option %d", tracker.ErrInvalidInput, int(c)))
	}
	return nil
}

// skipInvalid reports invalid input and swallows it. Any other error is returned.
func (m *Menu) skipInvalid(err error) error {
	if errors.Is(err, tracker.ErrInvalidInput) {
		m.fail(err)
		return nil
	}
	return err
}

// endOfInput turns a clean end of input into a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.heading.Render("Task Tracker"))
	for c := ChoiceAdd; c <= ChoiceJournal; c++ {
		fmt.Fprintf(m.out, "%d. %s\n", c, choiceLabels[c])
	}
	fmt.Fprintf(m.out, "%d. %s\n", ChoiceExit, choiceLabels[ChoiceExit])
}

func (m *Menu) printActive() {
	counts := m.tracker.Counts()
	fmt.Fprintln(m.out, m.heading.Render(fmt.Sprintf("Tasks (%d/%d)", counts.Active, counts.Capacity)))
	if counts.Active == 0 {
		fmt.Fprintln(m.out, m.muted.Render("No tasks."))
		return
	}
	for pos, task := range m.tracker.Active() {
		fmt.Fprintln(m.out, task.Line(pos, m.layout))
	}
}

func (m *Menu) printSeq(title string, seq iter.Seq[models.Task], empty string) {
	fmt.Fprintln(m.out, m.heading.Render(title))
	pos := 0
	for task := range seq {
		pos++
		fmt.Fprintln(m.out, task.Line(pos, m.layout))
	}
	if pos == 0 {
		fmt.Fprintln(m.out, m.muted.Render(empty))
	}
}

func (m *Menu) printJournal() {
	fmt.Fprintln(m.out, m.heading.Render("Activity log"))
	entries, err := m.tracker.Journal(journalLimit)
	if err != nil {
		m.fail(err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(m.out, m.muted.Render("No activity yet."))
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-14s %s", e.Timestamp.Local().Format("15:04:05"), e.Action, e.Outcome)
		if e.Details != "" {
			line += " (" + e.Details + ")"
		}
		fmt.Fprintln(m.out, line)
	}
}

func (m *Menu) readTask(ctx context.Context) (models.Task, error) {
	var in tracker.TaskInput
	var err error
	if in.Title, err = m.prompt(ctx, "Title: "); err != nil {
		return models.Task{}, err
	}
	if in.Importance, err = m.prompt(ctx, fmt.Sprintf("Importance (%d-%d): ", models.ImportanceLow, models.ImportanceHigh)); err != nil {
		return models.Task{}, err
	}
	if in.DueDate, err = m.prompt(ctx, fmt.Sprintf("Due date (%s): ", m.layout)); err != nil {
		return models.Task{}, err
	}
	return tracker.ParseTask(in, m.layout)
}

func (m *Menu) readPosition(ctx context.Context) (int, error) {
	line, err := m.prompt(ctx, "Task number: ")
	if err != nil {
		return 0, err
	}
	pos, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: task number %q is not a number", tracker.ErrInvalidInput, line)
	}
	return pos, nil
}

// prompt prints label and waits for one trimmed line. It returns io.EOF at end
// of input and ctx.Err() once ctx is cancelled.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.out, label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(m.out)
		return "", ctx.Err()
	case l, ok := <-m.lines:
		if !ok {
			fmt.Fprintln(m.out)
			if m.readErr != nil {
				return "", m.readErr
			}
			return "", io.EOF
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return l.text, l.err
	}
}

// readLines feeds lines until input ends or done is closed.
func (m *Menu) readLines(lines chan<- inputLine, done <-chan struct{}) {
	defer close(lines)
	for {
		text, err := readLine(m.in)
		if err != nil && !errors.Is(err, errLineTooLong) {
			if !errors.Is(err, io.EOF) {
				m.readErr = err
			}
			return
		}
		select {
		case lines <- inputLine{text: text, err: err}:
		case <-done:
			return
		}
	}
}

// readLine returns the next line without its newline. A line longer than the
// reader's buffer is drained and reported as errLineTooLong.
func readLine(r *bufio.Reader) (string, error) {
	b, err := r.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = r.ReadSlice('\n')
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", errLineTooLong
	}
	if err != nil && (len(b) == 0 || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (m *Menu) ok(msg string) {
	fmt.Fprintln(m.out, m.success.Render(msg))
}

func (m *Menu) fail(err error) {
	fmt.Fprintln(m.out, m.failure.Render("Error: "+userMessage(err)))
}

// userMessage maps core errors to the text shown in the menu.
func userMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrCapacityExceeded):
		return fmt.Sprintf("task list is full (%d tasks)", store.MaxActiveTasks)
	case errors.Is(err, store.ErrOutOfRange):
		return "invalid task number"
	case errors.Is(err, tracker.ErrJournalUnavailable):
		return "activity log is disabled"
	default:
		return err.Error()
	}
}
