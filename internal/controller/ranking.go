package controller

import (
	"sort"
	"strconv"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// objectRow is one batch as shown in the ranking.
type objectRow struct {
	name       string
	statements int
	covered    int
	rate       float64
}

// rankObjects orders batches by statement coverage, best first. Equal rates
// keep their input order.
func rankObjects(batches []m.Batch) []objectRow {
	rows := make([]objectRow, 0, len(batches))

	for _, b := range batches {
		rows = append(rows, objectRow{
			name:       b.ObjectName,
			statements: b.Summary.StatementCount,
			covered:    b.Summary.CoveredStatementCount,
			rate:       b.Summary.StatementRate(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].rate > rows[j].rate
	})

	return rows
}

func formatPercent(rate float64) string {
	return formatFloat(rate*100) + "%"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
