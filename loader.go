package stocktracker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StorageError reports holdings data that could not be read. It is not fatal:
// the holdings returned alongside are empty and usable.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot read holdings: %v", e.Err)
	}
	return fmt.Sprintf("cannot read holdings %q: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// LoadHoldings reads the holdings file at path.
//
// A missing file is an empty set of holdings. An unreadable or corrupt file is
// also an empty set, returned with a *StorageError describing the problem.
func LoadHoldings(path, currency string) (*Holdings, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewHoldings(currency), nil
	}
	if err != nil {
		return NewHoldings(currency), &StorageError{Path: path, Err: err}
	}
	defer f.Close()

	holdings, err := DecodeHoldings(f, currency)
	var serr *StorageError
	if errors.As(err, &serr) {
		serr.Path = path
	}
	return holdings, err
}

// SaveHoldings writes holdings to path.
//
// The content is written to a temporary file in the same folder first, then
// renamed over path, so that path is either fully written or left untouched.
func SaveHoldings(path string, holdings *Holdings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for holdings %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error opening holdings file %q for writing: %w", path, err)
	}
	// no-op once renamed.
	defer os.Remove(tmp.Name())

	if err := EncodeHoldings(tmp, holdings); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing holdings file %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing holdings file %q: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("error writing holdings file %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error replacing holdings file %q: %w", path, err)
	}
	return nil
}
