package adapter

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// ResultStore persists and retrieves correlated coverage results.
type ResultStore interface {
	SaveResult(path m.Path, result *m.CoverageResult) error
	LoadResult(path m.Path) (*m.CoverageResult, error)
}

// LocalResultStore keeps msgpack snapshots on the local disk.
type LocalResultStore struct{}

// NewResultStore constructs a ResultStore implementation.
func NewResultStore() ResultStore {
	return &LocalResultStore{}
}

// SaveResult encodes result into path, replacing any previous snapshot
// atomically.
func (rs *LocalResultStore) SaveResult(path m.Path, result *m.CoverageResult) error {
	if result == nil {
		return errors.New("cannot save a nil coverage result")
	}

	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating snapshot directory %s", dir)
	}

	f, err := os.CreateTemp(dir, ".sqlcover-*")
	if err != nil {
		return errors.Wrap(err, "creating snapshot temp file")
	}

	tmp := f.Name()

	defer func() {
		_ = os.Remove(tmp)
	}()

	if err := msgpack.NewEncoder(f).Encode(result); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "encoding coverage snapshot")
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing snapshot temp file")
	}

	if err := os.Rename(tmp, string(path)); err != nil {
		return errors.Wrapf(err, "writing snapshot %s", path)
	}

	return nil
}

// LoadResult decodes the snapshot at path.
func (rs *LocalResultStore) LoadResult(path m.Path) (*m.CoverageResult, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, errors.Wrapf(err, "opening snapshot %s", path)
	}

	defer func() {
		_ = f.Close()
	}()

	var result m.CoverageResult
	if err := msgpack.NewDecoder(f).Decode(&result); err != nil {
		return nil, errors.Wrapf(err, "decoding snapshot %s", path)
	}

	return &result, nil
}
