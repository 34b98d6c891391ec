package controller

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

type quitModel struct{}

func (q quitModel) Init() tea.Cmd { return tea.Quit }
func (q quitModel) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return q, tea.Quit
}
func (q quitModel) View() string { return "" }

func waitOrFail(t *testing.T, name string, fn func()) {
	t.Helper()

	done := make(chan struct{})

	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s timed out", name)
	}
}

func TestTUI_StartWithModel_WaitAndClose(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)
	tui.options = []tea.ProgramOption{tea.WithInput(nil)}

	if err := tui.startWithModel(quitModel{}); err != nil {
		t.Fatalf("startWithModel error = %v", err)
	}

	// a second start is ignored
	if err := tui.startWithModel(quitModel{}); err != nil {
		t.Fatalf("second startWithModel error = %v", err)
	}

	tui.DisplayReportWritten("html", m.Path("sqlcover.html"))

	waitOrFail(t, "Wait()", tui.Wait)
	waitOrFail(t, "Close()", tui.Close)

	if err := tui.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
}

func TestTUI_SendBeforeStartIsNoop(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	tui.send(reportWrittenMsg{format: "raw"})

	waitOrFail(t, "Wait()", tui.Wait)
	waitOrFail(t, "Close()", tui.Close)
}

func TestTUI_EnsureStartedDoesNotRestart(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	tui.started = true
	tui.ensureStarted()

	if tui.program != nil {
		t.Fatalf("ensureStarted() started a program although started was set")
	}
}

func TestTUI_DisplaySummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	if err := tui.DisplaySummary(nil); err != nil {
		t.Fatalf("DisplaySummary(nil) error = %v", err)
	}

	if tui.started {
		t.Fatalf("DisplaySummary(nil) started the program")
	}
}
