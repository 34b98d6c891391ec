package coverage

import m "github.com/mouse-blink/sqlcover/internal/model"

// StatementOffsets maps a statement range onto line/column positions of the
// batch text, counting lines from 1.
func StatementOffsets(s m.Statement, text string) m.OffsetPosition {
	return Offsets(s.Offset, s.Length, text, 1)
}

// Offsets converts an offset/length pair into line and column positions.
//
// The scan starts at line lineStart, column 1. A newline increments the line
// and resets the column to 0; every other rune increments the column. The
// scan stops as soon as offset+length is reached, so when that index lies
// past the end of text the end fields stay zero.
func Offsets(offset, length int, text string, lineStart int) m.OffsetPosition {
	pos, _ := Locate(offset, length, text, lineStart)

	return pos
}

// Locate is Offsets that also reports whether both the start and the end
// index were reached. Line numbers alone cannot tell, since a lineStart below
// 1 yields zero or negative lines for positions that do exist.
func Locate(offset, length int, text string, lineStart int) (m.OffsetPosition, bool) {
	var pos m.OffsetPosition

	runes := []rune(text)
	end := offset + length
	line, column := lineStart, 1
	started := false

	for index := 0; index <= len(runes); index++ {
		if index == offset {
			pos.StartLine = line
			pos.StartColumn = column
			started = true
		}

		if index == end {
			pos.EndLine = line
			pos.EndColumn = column

			return pos, started
		}

		if index == len(runes) {
			break
		}

		if runes[index] == '\n' {
			line++
			column = 0

			continue
		}

		column++
	}

	return pos, false
}
