package adapter

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// ReportWriter persists rendered reports and batch sources. It hides direct
// os access so the workflow can be tested without touching the disk.
type ReportWriter interface {
	// WriteReport writes content to name inside dir and returns the full path.
	WriteReport(dir m.Path, name string, content string) (m.Path, error)

	// SaveSourceFiles writes each batch text to a file named after the batch
	// object, silently overwriting existing files.
	SaveSourceFiles(dir m.Path, batches []m.Batch) error
}

// LocalReportWriter writes to the local filesystem.
type LocalReportWriter struct{}

// NewLocalReportWriter constructs a LocalReportWriter.
func NewLocalReportWriter() *LocalReportWriter {
	return &LocalReportWriter{}
}

// WriteReport implements ReportWriter.
func (w *LocalReportWriter) WriteReport(dir m.Path, name string, content string) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return "", errors.Wrapf(err, "creating report directory %s", dir)
	}

	target := filepath.Join(string(dir), name)
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing report %s", target)
	}

	return m.Path(target), nil
}

// SaveSourceFiles implements ReportWriter.
func (w *LocalReportWriter) SaveSourceFiles(dir m.Path, batches []m.Batch) error {
	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return errors.Wrapf(err, "creating source directory %s", dir)
	}

	for _, b := range batches {
		name := filepath.Base(filepath.Clean(b.ObjectName))
		if name == "." || name == string(filepath.Separator) || name == "" {
			return errors.Newf("batch %d has no usable object name", b.ObjectID)
		}

		target := filepath.Join(string(dir), name)
		if err := os.WriteFile(target, []byte(b.Text), 0o644); err != nil {
			return errors.Wrapf(err, "writing source %s", target)
		}
	}

	return nil
}
