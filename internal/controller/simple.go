package controller

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately; plain output needs no user interaction.
func (s *SimpleUI) Wait() {}

// DisplaySummary prints the per-object ranking table and run totals.
func (s *SimpleUI) DisplaySummary(result *m.CoverageResult) error {
	if result == nil {
		return nil
	}

	if header := result.Meta.Header(); header != "" {
		s.printf("%s\n", header)
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Object", "Statements", "Covered", "Coverage"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, row := range rankObjects(result.Batches) {
		table.Append([]string{
			row.name,
			strconv.Itoa(row.statements),
			strconv.Itoa(row.covered),
			formatPercent(row.rate),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Objects %d", len(result.Batches)),
		strconv.Itoa(result.Summary.StatementCount),
		strconv.Itoa(result.Summary.CoveredStatementCount),
		formatPercent(result.Summary.StatementRate()),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	s.printf("branches: %d/%d covered (%s)\n",
		result.Summary.CoveredBranchesCount, result.Summary.BranchesCount,
		formatPercent(result.Summary.BranchRate()))
	s.printf("events: %d read, %d matched, %d unknown object, %d outside statements\n",
		result.Stats.Events, result.Stats.Matched, result.Stats.UnknownObject, result.Stats.NoStatement)

	if n := len(result.Exceptions); n > 0 {
		s.printf("sql exceptions: %d\n", n)
	}

	return nil
}

// DisplayReportWritten reports where a rendered format was saved.
func (s *SimpleUI) DisplayReportWritten(format string, path m.Path) {
	s.printf("wrote %s report to %s\n", format, path)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
