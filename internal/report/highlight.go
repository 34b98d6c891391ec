package report

import (
	"html"
	"sort"
	"strings"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

type marker struct {
	pos int
	seq int
	tag string
}

// highlight escapes text and wraps every covered statement in open/close.
//
// Markers are placed as if spliced into the text one statement at a time in
// descending offset order, end marker first. All positions refer to the
// original text, so a marker never shifts another one. At equal positions
// the marker inserted later comes first.
func highlight(text string, statements []m.Statement, open, close string) string {
	runes := []rune(text)

	covered := make([]m.Statement, 0, len(statements))

	for _, s := range statements {
		if s.HitCount > 0 {
			covered = append(covered, s)
		}
	}

	sort.SliceStable(covered, func(i, j int) bool {
		return covered[i].Offset > covered[j].Offset
	})

	markers := make([]marker, 0, 2*len(covered))

	for _, s := range covered {
		start := clamp(s.Offset, len(runes))
		end := clamp(s.Offset+s.Length, len(runes))

		markers = append(markers,
			marker{pos: end, seq: len(markers), tag: close},
			marker{pos: start, seq: len(markers) + 1, tag: open},
		)
	}

	sort.Slice(markers, func(i, j int) bool {
		if markers[i].pos != markers[j].pos {
			return markers[i].pos < markers[j].pos
		}

		return markers[i].seq > markers[j].seq
	})

	var b strings.Builder

	last := 0

	for _, mk := range markers {
		b.WriteString(html.EscapeString(string(runes[last:mk.pos])))
		b.WriteString(mk.tag)
		last = mk.pos
	}

	b.WriteString(html.EscapeString(string(runes[last:])))

	return b.String()
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}

	if v > limit {
		return limit
	}

	return v
}
