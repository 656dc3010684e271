package resource

import (
	"os"

	"github.com/pkg/errors"
)

var ErrUnavailable = errors.New("resource unavailable")

// Open opens a local file, reporting any failure as ErrUnavailable.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Unavailable(path, err)
	}
	return f, nil
}

func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Unavailable(path, err)
	}
	return data, nil
}

// Unavailable wraps ErrUnavailable with the path and the underlying cause.
func Unavailable(path string, cause error) error {
	return errors.Wrapf(ErrUnavailable, "%s: %v", path, cause)
}
