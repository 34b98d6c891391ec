// Package model defines the data structures for SQL coverage runs.
package model

// Batch is one parsed, coverable unit of script text (a stored procedure,
// a function, a trigger or a plain script).
type Batch struct {
	ObjectID   int         `yaml:"object_id" msgpack:"object_id"`
	ObjectName string      `yaml:"object_name" msgpack:"object_name"`
	FileName   string      `yaml:"file_name" msgpack:"file_name"`
	Text       string      `yaml:"text" msgpack:"text"`
	Statements []Statement `yaml:"statements" msgpack:"statements"`

	// Summary is derived by the correlator and never read from parser output.
	Summary Summary `yaml:"-" msgpack:"summary"`
}

// Statement is the smallest independently coverable source range.
type Statement struct {
	Offset      int      `yaml:"offset" msgpack:"offset"`
	Length      int      `yaml:"length" msgpack:"length"`
	IsCoverable bool     `yaml:"coverable" msgpack:"coverable"`
	HitCount    int      `yaml:"-" msgpack:"hits"`
	Branches    []Branch `yaml:"branches,omitempty" msgpack:"branches"`
}

// Branch is a conditional path inside a statement. Its HitCount mirrors the
// statement that covers it.
type Branch struct {
	Offset   int `yaml:"offset" msgpack:"offset"`
	Length   int `yaml:"length" msgpack:"length"`
	HitCount int `yaml:"-" msgpack:"hits"`
}

// Tally counts statements, branches and hits from the current hit counts.
func (b Batch) Tally() Summary {
	s := Summary{StatementCount: len(b.Statements)}

	for _, st := range b.Statements {
		if st.HitCount > 0 {
			s.CoveredStatementCount++
		}

		s.HitCount += st.HitCount

		for _, br := range st.Branches {
			s.BranchesCount++

			if br.HitCount > 0 {
				s.CoveredBranchesCount++
			}
		}
	}

	return s
}
