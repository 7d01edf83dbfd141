package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fentz26/tasker/internal/audit"
	"github.com/fentz26/tasker/internal/tracker"
)

func runScript(t *testing.T, tr *tracker.Tracker, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	m := New(tr, in, &out, Options{})
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestMenuScenario(t *testing.T) {
	tr := tracker.New(nil)
	out := runScript(t, tr,
		"1", "Write report", "2", "2024-05-10",
		"1", "Fix bug", "3", "2024-05-05",
		"1", "Clean desk", "1", "2024-05-20",
		"6", "2",
		"7", "2",
		"0",
	)

	byImportance := "1. Clean desk | Importance: 1 | Due: 2024-05-20\n" +
		"2. Write report | Importance: 2 | Due: 2024-05-10\n" +
		"3. Fix bug | Importance: 3 | Due: 2024-05-05\n"
	if !strings.Contains(out, byImportance) {
		t.Errorf("Expected importance order in output:\n%s", out)
	}

	byDate := "1. Fix bug | Importance: 3 | Due: 2024-05-05\n" +
		"2. Write report | Importance: 2 | Due: 2024-05-10\n" +
		"3. Clean desk | Importance: 1 | Due: 2024-05-20\n"
	if !strings.Contains(out, byDate) {
		t.Errorf("Expected due date order in output:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Error("Expected exit message")
	}
}

func TestMenuCompleteAndUrgent(t *testing.T) {
	tr := tracker.New(nil)
	out := runScript(t, tr,
		"1", "a", "1", "2024-05-01",
		"1", "b", "2", "2024-05-02",
		"4", "1",
		"4", "1",
		"5",
		"8", "Call plumber", "3", "2024-05-03",
		"8", "Pay rent", "3", "2024-05-04",
		"9",
	)

	completed := "Completed tasks\n" +
		"1. b | Importance: 2 | Due: 2024-05-02\n" +
		"2. a | Importance: 1 | Due: 2024-05-01\n"
	if !strings.Contains(out, completed) {
		t.Errorf("Expected newest completion first:\n%s", out)
	}

	urgent := "Urgent tasks\n" +
		"1. Call plumber | Importance: 3 | Due: 2024-05-03\n" +
		"2. Pay rent | Importance: 3 | Due: 2024-05-04\n"
	if !strings.Contains(out, urgent) {
		t.Errorf("Expected urgent tasks in FIFO order:\n%s", out)
	}

	counts := tr.Counts()
	if counts.Active != 0 || counts.Completed != 2 || counts.Urgent != 2 {
		t.Errorf("Unexpected counts: %+v", counts)
	}
}

func TestMenuRecoversFromErrors(t *testing.T) {
	tr := tracker.New(nil)
	out := runScript(t, tr,
		"abc",
		"42",
		"3", "1",
		"3", "x",
		"1", "Bad", "high", "2024-05-01",
		"1", "Bad date", "1", "tomorrow",
		"2",
		"10",
		"0",
	)

	for _, want := range []string{
		`"abc" is not a menu number`,
		"no menu option 42",
		"invalid task number",
		`task number "x" is not a number`,
		`importance "high" is not a number`,
		`parse date "tomorrow"`,
		"No tasks.",
		"activity log is disabled",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestMenuFullStore(t *testing.T) {
	tr := tracker.New(nil)
	var lines []string
	for i := 0; i < 101; i++ {
		lines = append(lines, "1", "t", "1", "2024-05-01")
	}
	out := runScript(t, tr, lines...)

	if strings.Count(out, "Task added.") != 100 {
		t.Errorf("Expected 100 successful adds, got %d", strings.Count(out, "Task added."))
	}
	if !strings.Contains(out, "task list is full (100 tasks)") {
		t.Error("Expected capacity error")
	}
}

func TestMenuJournal(t *testing.T) {
	j, err := audit.Open(audit.MemoryDSN)
	if err != nil {
		t.Fatalf("Open journal failed: %v", err)
	}
	defer j.Close()

	tr := tracker.New(j)
	out := runScript(t, tr,
		"1", "a", "1", "2024-05-01",
		"3", "9",
		"10",
	)

	if !strings.Contains(out, "task.add") || !strings.Contains(out, "task.remove") {
		t.Errorf("Expected journal actions in output:\n%s", out)
	}
	if !strings.Contains(out, "error (position 9 not in [1, 1]: position out of range)") {
		t.Errorf("Expected failed removal in journal:\n%s", out)
	}
}

func TestMenuEndOfInputMidPrompt(t *testing.T) {
	tr := tracker.New(nil)
	runScript(t, tr, "1", "half a task")

	if tr.Counts().Active != 0 {
		t.Error("Expected no task added when input ends mid-prompt")
	}
}

func TestMenuCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(tracker.New(nil), strings.NewReader("1\n"), &bytes.Buffer{}, Options{})
	if err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestMenuCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	m := New(tracker.New(nil), pr, io.Discard, Options{})

	result := make(chan error, 1)
	go func() { result <- m.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMenuOversizedLine(t *testing.T) {
	tr := tracker.New(nil)
	out := runScript(t, tr,
		"1", strings.Repeat("x", 70000), "2", "2024-05-10",
		"1", "Fits", "2", "2024-05-10",
		"0",
	)

	if !strings.Contains(out, "line longer than 65536 bytes") {
		t.Errorf("Expected oversized line error in output")
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Error("Expected the menu to keep running")
	}
	if got := tr.Counts().Active; got != 1 {
		t.Errorf("Expected only the short task to be added, got %d", got)
	}
}
