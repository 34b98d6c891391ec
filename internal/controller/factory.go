package controller

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Mode selects how coverage summaries are displayed.
type Mode string

// Display modes.
const (
	ModeAuto  Mode = "auto"
	ModePlain Mode = "plain"
	ModeTUI   Mode = "tui"
)

// ParseMode resolves a mode name. An empty name means ModeAuto.
func ParseMode(name string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(name))); mode {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModePlain, ModeTUI:
		return mode, nil
	default:
		return "", errors.Newf("unknown ui mode %q (want auto, plain or tui)", name)
	}
}

// NewUI builds the summary display for cmd. ModeAuto picks the TUI only when
// the command writes to an interactive terminal, so piped or redirected
// output always gets the plain table.
func NewUI(cmd *cobra.Command, mode Mode) UI {
	out := cmd.OutOrStdout()

	switch mode {
	case ModeTUI:
		return NewTUI(out)
	case ModePlain:
		return NewSimpleUI(cmd)
	}

	if isTerminal(out) {
		return NewTUI(out)
	}

	return NewSimpleUI(cmd)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
