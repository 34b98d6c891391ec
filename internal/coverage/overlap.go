package coverage

import m "github.com/mouse-blink/sqlcover/internal/model"

// Range is a half-open character range [Offset, Offset+Length).
type Range struct {
	Offset int
	Length int
}

// End returns the exclusive end of the range.
func (r Range) End() int {
	return r.Offset + r.Length
}

// StatementRange returns the range covered by a statement.
func StatementRange(s m.Statement) Range {
	return Range{Offset: s.Offset, Length: s.Length}
}

// BranchRange returns the range covered by a branch.
func BranchRange(b m.Branch) Range {
	return Range{Offset: b.Offset, Length: b.Length}
}

// EventRange returns the range reported by an executed event.
func EventRange(e m.ExecutedEvent) Range {
	return Range{Offset: e.Offset, Length: e.Length}
}

// Overlaps reports whether two ranges share at least one character. Empty
// ranges overlap nothing, and ranges that only touch at a boundary do not
// overlap.
func Overlaps(a, b Range) bool {
	if a.Length <= 0 || b.Length <= 0 {
		return false
	}

	return a.Offset < b.End() && b.Offset < a.End()
}

// firstOverlapping returns the index of the first statement, in declaration
// order, overlapping r, or -1.
func firstOverlapping(statements []m.Statement, r Range) int {
	for i := range statements {
		if Overlaps(StatementRange(statements[i]), r) {
			return i
		}
	}

	return -1
}
