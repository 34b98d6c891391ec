// Package adapter contains the infrastructure adapters sqlcover reads runs
// from and writes reports to.
package adapter

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// EventStream is an EventSource that holds resources until closed.
type EventStream interface {
	m.EventSource
	io.Closer
}

// SliceEventSource replays an in-memory list of events.
type SliceEventSource struct {
	events []m.ExecutedEvent
	next   int
}

// NewSliceEventSource constructs a SliceEventSource over events.
func NewSliceEventSource(events ...m.ExecutedEvent) *SliceEventSource {
	return &SliceEventSource{events: events}
}

// Next returns the next event or io.EOF.
func (s *SliceEventSource) Next() (m.ExecutedEvent, error) {
	if s.next >= len(s.events) {
		return m.ExecutedEvent{}, io.EOF
	}

	e := s.events[s.next]
	s.next++

	return e, nil
}

// Close is a no-op.
func (s *SliceEventSource) Close() error {
	return nil
}

// YAMLEventSource decodes one event per YAML document from a stream, pulling
// a single document per call so large traces are never held in memory.
type YAMLEventSource struct {
	dec    *yaml.Decoder
	closer io.Closer
	index  int
}

// NewYAMLEventSource reads events from r. When r is an io.Closer it is
// closed by Close.
func NewYAMLEventSource(r io.Reader) *YAMLEventSource {
	src := &YAMLEventSource{dec: yaml.NewDecoder(r)}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}

	return src
}

// Next decodes the next document. Empty documents are skipped.
func (s *YAMLEventSource) Next() (m.ExecutedEvent, error) {
	for {
		var doc *m.ExecutedEvent

		err := s.dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return m.ExecutedEvent{}, io.EOF
		}

		s.index++

		if err != nil {
			return m.ExecutedEvent{}, errors.Wrapf(err, "decoding trace document %d", s.index)
		}

		if doc == nil {
			continue
		}

		return *doc, nil
	}
}

// Close releases the underlying reader.
func (s *YAMLEventSource) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}
