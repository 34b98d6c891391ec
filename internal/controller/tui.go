package controller

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	options []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	started bool
	done    chan struct{}
	runErr  error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the coverage summary program in the background.
func (t *TUI) Start() error {
	return t.startWithModel(newSummaryModel())
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	options := append([]tea.ProgramOption{tea.WithOutput(t.output), tea.WithAltScreen()}, t.options...)
	program := tea.NewProgram(model, options...)
	done := make(chan struct{})

	t.program = program
	t.done = done
	t.started = true

	go func() {
		defer close(done)

		_, err := program.Run()

		t.mu.Lock()
		t.runErr = err
		t.mu.Unlock()
	}()

	return nil
}

func (t *TUI) ensureStarted() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if !started {
		_ = t.Start()
	}
}

// send forwards msg to the running program. Before Start it is a no-op.
func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(msg)
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	<-done
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Err returns the error the program exited with, if any.
func (t *TUI) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.runErr
}

// DisplaySummary shows the ranking of covered objects.
func (t *TUI) DisplaySummary(result *m.CoverageResult) error {
	if result == nil {
		return nil
	}

	t.ensureStarted()
	t.send(summaryMsg{result: result})

	return nil
}

// DisplayReportWritten lists a saved report below the ranking.
func (t *TUI) DisplayReportWritten(format string, path m.Path) {
	t.ensureStarted()
	t.send(reportWrittenMsg{format: format, path: path})
}
