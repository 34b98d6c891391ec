package model

import "time"

// Summary holds aggregate coverage counts for a batch or a whole run.
type Summary struct {
	StatementCount        int `msgpack:"statements"`
	CoveredStatementCount int `msgpack:"covered_statements"`
	BranchesCount         int `msgpack:"branches"`
	CoveredBranchesCount  int `msgpack:"covered_branches"`
	HitCount              int `msgpack:"hits"`
}

// Add returns the element-wise sum of two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		StatementCount:        s.StatementCount + other.StatementCount,
		CoveredStatementCount: s.CoveredStatementCount + other.CoveredStatementCount,
		BranchesCount:         s.BranchesCount + other.BranchesCount,
		CoveredBranchesCount:  s.CoveredBranchesCount + other.CoveredBranchesCount,
		HitCount:              s.HitCount + other.HitCount,
	}
}

// StatementRate returns covered/total statements in [0,1]. Zero statements
// yield 0.
func (s Summary) StatementRate() float64 {
	return rate(s.CoveredStatementCount, s.StatementCount)
}

// BranchRate returns covered/total branches in [0,1]. Zero branches yield 0.
func (s Summary) BranchRate() float64 {
	return rate(s.CoveredBranchesCount, s.BranchesCount)
}

func rate(covered, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(covered) / float64(total)
}

// RunMetadata describes where and how a coverage run was captured.
type RunMetadata struct {
	RunID         string    `msgpack:"run_id"`
	DatabaseName  string    `msgpack:"database"`
	DataSource    string    `msgpack:"data_source"`
	CommandDetail string    `msgpack:"command_detail"`
	StartedAt     time.Time `msgpack:"started_at"`
}

// Header returns the command detail stamped with the run start time.
func (r RunMetadata) Header() string {
	if r.StartedAt.IsZero() {
		return r.CommandDetail
	}

	return r.CommandDetail + " at " + r.StartedAt.Format(time.RFC3339)
}

// CorrelationStats counts how the event stream was consumed.
type CorrelationStats struct {
	Events        int `msgpack:"events"`
	Matched       int `msgpack:"matched"`
	UnknownObject int `msgpack:"unknown_object"`
	NoStatement   int `msgpack:"no_statement"`
}

// CoverageResult is the correlated outcome of one coverage run.
type CoverageResult struct {
	Batches    []Batch          `msgpack:"batches"`
	Exceptions []string         `msgpack:"exceptions"`
	Summary    Summary          `msgpack:"summary"`
	Meta       RunMetadata      `msgpack:"meta"`
	Stats      CorrelationStats `msgpack:"stats"`
}

// OffsetPosition is a line/column view of an offset range.
type OffsetPosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}
