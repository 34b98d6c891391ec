package adapter

import (
	"context"
	"database/sql"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	// Registers the sqlite3 driver used for sqlite:// trace locations.
	_ "github.com/mattn/go-sqlite3"
)

const sqlitePrefix = "sqlite://"

// TraceAdapter opens the executed-statement trace of a run.
type TraceAdapter interface {
	// Open resolves location to an event stream. Plain paths are read as a
	// multi-document YAML stream; sqlite://PATH locations are queried.
	Open(ctx context.Context, location string) (EventStream, error)
}

// LocalTraceAdapter opens traces from local files and sqlite databases.
type LocalTraceAdapter struct {
	driver string
	query  string
}

// NewLocalTraceAdapter constructs a LocalTraceAdapter. Empty driver and query
// fall back to sqlite3 and DefaultTraceQuery.
func NewLocalTraceAdapter(driver, query string) *LocalTraceAdapter {
	if driver == "" {
		driver = "sqlite3"
	}

	if query == "" {
		query = DefaultTraceQuery
	}

	return &LocalTraceAdapter{driver: driver, query: query}
}

// Open implements TraceAdapter.
func (a *LocalTraceAdapter) Open(ctx context.Context, location string) (EventStream, error) {
	if location == "" {
		return NewSliceEventSource(), nil
	}

	if dsn, ok := strings.CutPrefix(location, sqlitePrefix); ok {
		return a.openDatabase(ctx, dsn)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, errors.Wrapf(err, "opening trace %s", location)
	}

	return NewYAMLEventSource(f), nil
}

func (a *LocalTraceAdapter) openDatabase(ctx context.Context, dsn string) (EventStream, error) {
	db, err := sql.Open(a.driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening trace database %s", dsn)
	}

	src, err := NewSQLEventSource(ctx, db, a.query)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	src.owned = db

	return src, nil
}
