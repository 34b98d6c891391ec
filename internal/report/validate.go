package report

import (
	"github.com/cockroachdb/errors"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// ErrRenderInput marks a CoverageResult whose internal state is inconsistent.
var ErrRenderInput = errors.New("render input error")

func renderInputf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrRenderInput, format, args...)
}

// validate checks that result was produced by a complete correlation. It
// rejects anything that would make a renderer emit partial or corrupt output.
func validate(result *m.CoverageResult) error {
	if result == nil {
		return renderInputf("coverage result is nil")
	}

	var total m.Summary

	for bi, b := range result.Batches {
		textLen := len([]rune(b.Text))

		for si, s := range b.Statements {
			if s.Offset < 0 || s.Length < 0 {
				return renderInputf("batch %d (%q) statement %d has negative range %d+%d",
					bi, b.ObjectName, si, s.Offset, s.Length)
			}

			if s.Offset > textLen {
				return renderInputf("batch %d (%q) statement %d starts at %d beyond text length %d",
					bi, b.ObjectName, si, s.Offset, textLen)
			}

			for ri, br := range s.Branches {
				if br.Offset < 0 || br.Length < 0 {
					return renderInputf("batch %d (%q) statement %d branch %d has negative range %d+%d",
						bi, b.ObjectName, si, ri, br.Offset, br.Length)
				}
			}
		}

		if got := b.Tally(); got != b.Summary {
			return errors.WithDetailf(
				renderInputf("batch %d (%q) summary does not match its statements", bi, b.ObjectName),
				"summary=%+v statements=%+v", b.Summary, got)
		}

		total = total.Add(b.Summary)
	}

	if total != result.Summary {
		return errors.WithDetailf(
			renderInputf("global summary does not match the sum of batch summaries"),
			"summary=%+v batches=%+v", result.Summary, total)
	}

	return nil
}
