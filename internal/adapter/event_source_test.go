package adapter

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

func drain(t *testing.T, src m.EventSource) []m.ExecutedEvent {
	t.Helper()

	var out []m.ExecutedEvent

	for {
		e, err := src.Next()
		if err == io.EOF {
			return out
		}

		require.NoError(t, err)

		out = append(out, e)
	}
}

func TestSliceEventSource(t *testing.T) {
	src := NewSliceEventSource(
		m.ExecutedEvent{ObjectID: 1, Offset: 0, Length: 9},
		m.ExecutedEvent{ObjectID: 2, Offset: 4, Length: 1},
	)

	got := drain(t, src)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].ObjectID)

	_, err := src.Next()
	assert.Equal(t, io.EOF, err, "exhausted source keeps returning EOF")
	assert.NoError(t, src.Close())
}

func TestYAMLEventSource_PullsDocuments(t *testing.T) {
	stream := `object_id: 7
offset: 0
length: 9
---
---
object_id: 7
offset: 10
length: 17
`

	src := NewYAMLEventSource(strings.NewReader(stream))

	got := drain(t, src)
	assert.Equal(t, []m.ExecutedEvent{
		{ObjectID: 7, Offset: 0, Length: 9},
		{ObjectID: 7, Offset: 10, Length: 17},
	}, got)
	assert.NoError(t, src.Close())
}

func TestYAMLEventSource_DecodeError(t *testing.T) {
	src := NewYAMLEventSource(strings.NewReader("object_id: [oops\n"))

	_, err := src.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding trace document 1")
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestYAMLEventSource_ClosesReader(t *testing.T) {
	rc := &closeRecorder{Reader: strings.NewReader("")}

	src := NewYAMLEventSource(rc)
	assert.Empty(t, drain(t, src))
	require.NoError(t, src.Close())
	assert.True(t, rc.closed)
}
