package controller

import (
	m "github.com/mouse-blink/sqlcover/internal/model"
)

// Message types.
type summaryMsg struct {
	result *m.CoverageResult
}

type reportWrittenMsg struct {
	format string
	path   m.Path
}

// List item types.
type objectItem struct {
	row objectRow
}

func (o objectItem) FilterValue() string {
	return o.row.name
}
