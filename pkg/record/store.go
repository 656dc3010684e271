package record

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/common/resource"
)

// Store persists whole records. Save replaces any previous record.
type Store interface {
	Save(ctx context.Context, r *Record) error
	Load(ctx context.Context) (*Record, error)
}

// FileStore keeps the record as a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Save writes to a temporary file in the same directory and renames it over
// the target, so readers never observe a half-written record.
func (s *FileStore) Save(_ context.Context, r *Record) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return resource.Unavailable(s.path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if err := Write(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close record file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return resource.Unavailable(s.path, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (*Record, error) {
	f, err := resource.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	r, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	return r, nil
}
