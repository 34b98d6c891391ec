package model

// Path represents a file system path.
type Path string

// Workload is the parsed script set of a run together with the exceptions
// recorded while the traced workload was executing.
type Workload struct {
	DatabaseName string   `yaml:"database"`
	DataSource   string   `yaml:"data_source"`
	Batches      []Batch  `yaml:"batches"`
	Exceptions   []string `yaml:"exceptions,omitempty"`
}
