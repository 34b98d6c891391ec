package adapter

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// WorkloadAdapter loads the parsed batches and recorded exceptions of a run.
type WorkloadAdapter interface {
	Load(path m.Path) (m.Workload, error)
}

// LocalWorkloadAdapter reads a workload written by the script parser as YAML
// (JSON documents are accepted as well).
type LocalWorkloadAdapter struct{}

// NewLocalWorkloadAdapter constructs a LocalWorkloadAdapter.
func NewLocalWorkloadAdapter() *LocalWorkloadAdapter {
	return &LocalWorkloadAdapter{}
}

// Load decodes the workload at path.
func (a *LocalWorkloadAdapter) Load(path m.Path) (m.Workload, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Workload{}, errors.Wrapf(err, "reading workload %s", path)
	}

	var w m.Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return m.Workload{}, errors.Wrapf(err, "decoding workload %s", path)
	}

	return w, nil
}
