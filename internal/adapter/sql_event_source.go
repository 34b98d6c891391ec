package adapter

import (
	"context"
	"database/sql"
	"io"

	"github.com/cockroachdb/errors"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// DefaultTraceQuery selects executed statements from the table written by the
// trace collector. Columns must be object id, offset and length, in order.
const DefaultTraceQuery = `SELECT object_id, offset_start, offset_length FROM executed_statements ORDER BY event_sequence`

// SQLEventSource pulls executed events row by row from a database query.
type SQLEventSource struct {
	rows   *sql.Rows
	owned  io.Closer
	closed bool
}

// NewSQLEventSource runs query against db and returns a source over the
// result rows. The rows stay open until the source is exhausted or closed.
func NewSQLEventSource(ctx context.Context, db *sql.DB, query string) (*SQLEventSource, error) {
	if query == "" {
		query = DefaultTraceQuery
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "querying executed statements")
	}

	return &SQLEventSource{rows: rows}, nil
}

// Next scans the next row into an event.
func (s *SQLEventSource) Next() (m.ExecutedEvent, error) {
	if s.closed {
		return m.ExecutedEvent{}, io.EOF
	}

	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return m.ExecutedEvent{}, errors.Wrap(err, "iterating executed statements")
		}

		return m.ExecutedEvent{}, io.EOF
	}

	var e m.ExecutedEvent
	if err := s.rows.Scan(&e.ObjectID, &e.Offset, &e.Length); err != nil {
		return m.ExecutedEvent{}, errors.Wrap(err, "scanning executed statement")
	}

	return e, nil
}

// Close closes the rows and, when the source opened the database itself,
// the database handle.
func (s *SQLEventSource) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	err := s.rows.Close()
	if s.owned != nil {
		err = errors.CombineErrors(err, s.owned.Close())
	}

	return err
}
