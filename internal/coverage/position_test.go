package coverage

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

func TestOffsets(t *testing.T) {
	const text = "SELECT 1;\nSELECT 2;"

	tests := []struct {
		name      string
		offset    int
		length    int
		lineStart int
		want      m.OffsetPosition
	}{
		{"first line", 0, 9, 1, m.OffsetPosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 10}},
		{"second line ends at text end", 10, 9, 1, m.OffsetPosition{StartLine: 2, StartColumn: 0, EndLine: 2, EndColumn: 9}},
		{"spans both lines", 0, 19, 1, m.OffsetPosition{StartLine: 1, StartColumn: 1, EndLine: 2, EndColumn: 9}},
		{"line start shifts lines", 10, 9, 5, m.OffsetPosition{StartLine: 6, StartColumn: 0, EndLine: 6, EndColumn: 9}},
		{"starts on newline", 9, 1, 1, m.OffsetPosition{StartLine: 1, StartColumn: 10, EndLine: 2, EndColumn: 0}},
		{"zero length", 3, 0, 1, m.OffsetPosition{StartLine: 1, StartColumn: 4, EndLine: 1, EndColumn: 4}},
		{"end past text stays zero", 10, 10, 1, m.OffsetPosition{StartLine: 2, StartColumn: 0}},
		{"start past text", 40, 2, 1, m.OffsetPosition{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Offsets(tt.offset, tt.length, text, tt.lineStart))
		})
	}
}

func TestLocate(t *testing.T) {
	const text = "SELECT 1\nFROM t"

	tests := []struct {
		name      string
		offset    int
		length    int
		lineStart int
		want      m.OffsetPosition
		wantOK    bool
	}{
		{"whole text", 0, 15, 1, m.OffsetPosition{StartLine: 1, StartColumn: 1, EndLine: 2, EndColumn: 6}, true},
		{"line start zero", 0, 15, 0, m.OffsetPosition{StartLine: 0, StartColumn: 1, EndLine: 1, EndColumn: 6}, true},
		{"line start negative", 0, 8, -4, m.OffsetPosition{StartLine: -4, StartColumn: 1, EndLine: -4, EndColumn: 9}, true},
		{"end past text", 9, 10, 1, m.OffsetPosition{StartLine: 2, StartColumn: 0}, false},
		{"negative start", -2, 4, 1, m.OffsetPosition{EndLine: 1, EndColumn: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := Locate(tt.offset, tt.length, text, tt.lineStart)
			assert.Equal(t, tt.want, pos)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, pos, Offsets(tt.offset, tt.length, text, tt.lineStart))
		})
	}
}

func TestOffsets_CountsRunesNotBytes(t *testing.T) {
	text := "-- héllo\nSELECT 1;"

	pos := Offsets(9, 9, text, 1)

	assert.Equal(t, m.OffsetPosition{StartLine: 2, StartColumn: 0, EndLine: 2, EndColumn: 9}, pos)
}

func TestStatementOffsets(t *testing.T) {
	s := m.Statement{Offset: 2, Length: 3}

	assert.Equal(t, Offsets(2, 3, "abcdefg", 1), StatementOffsets(s, "abcdefg"))
}

func TestOffsets_StartMatchesNewlinesAndColumns(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("ab \n;")

	for range 200 {
		n := 1 + rng.IntN(40)

		var sb strings.Builder
		for range n {
			sb.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}

		text := sb.String()
		offset := rng.IntN(n)
		lineStart := 1 + rng.IntN(3)
		prefix := text[:offset]

		newlines := strings.Count(prefix, "\n")

		wantColumn := offset + 1
		if last := strings.LastIndex(prefix, "\n"); last >= 0 {
			wantColumn = offset - last - 1
		}

		pos := Offsets(offset, n-offset, text, lineStart)

		assert.Equal(t, newlines+lineStart, pos.StartLine, "text %q offset %d", text, offset)
		assert.Equal(t, wantColumn, pos.StartColumn, "text %q offset %d", text, offset)
		assert.Equal(t, strings.Count(text, "\n")+lineStart, pos.EndLine, "text %q offset %d", text, offset)
	}
}
