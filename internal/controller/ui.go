// Package controller renders coverage runs to the terminal.
package controller

import (
	m "github.com/mouse-blink/sqlcover/internal/model"
)

// UI defines how a coverage run is presented.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start() error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplaySummary(result *m.CoverageResult) error
	DisplayReportWritten(format string, path m.Path)
}
