package report

import (
	m "github.com/mouse-blink/sqlcover/internal/model"
)

const scenarioText = "SELECT 1; IF 1=1 SELECT 2;"

// finalize fills the summaries the way a completed correlation does.
func finalize(batches ...m.Batch) *m.CoverageResult {
	result := &m.CoverageResult{Batches: batches}

	for i := range result.Batches {
		result.Batches[i].Summary = result.Batches[i].Tally()
		result.Summary = result.Summary.Add(result.Batches[i].Summary)
	}

	return result
}

func scenarioResult() *m.CoverageResult {
	return finalize(m.Batch{
		ObjectID:   7,
		ObjectName: "dbo.Scenario",
		FileName:   "Scenario.sql",
		Text:       scenarioText,
		Statements: []m.Statement{
			{Offset: 0, Length: 9, IsCoverable: true, HitCount: 1},
			{Offset: 10, Length: 17, IsCoverable: true, Branches: []m.Branch{{Offset: 13, Length: 10}}},
		},
	})
}

func namedBatch(name string, covered, total int) m.Batch {
	b := m.Batch{ObjectName: name, Text: "x"}

	for i := 0; i < total; i++ {
		s := m.Statement{Offset: 0, Length: 1, IsCoverable: true}
		if i < covered {
			s.HitCount = 1
		}

		b.Statements = append(b.Statements, s)
	}

	return b
}
