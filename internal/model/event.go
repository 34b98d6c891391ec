package model

// ExecutedEvent is one "statement executed" record from a runtime trace.
type ExecutedEvent struct {
	ObjectID int `yaml:"object_id"`
	Offset   int `yaml:"offset"`
	Length   int `yaml:"length"`
}

// EventSource is a pull-based sequence of executed events. Next returns
// io.EOF once the sequence is exhausted.
type EventSource interface {
	Next() (ExecutedEvent, error)
}
