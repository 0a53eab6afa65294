package storage

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock takes an exclusive advisory lock next to the stash file and blocks
// until it is available. Hold it across a load-modify-save sequence.
func (s *JSONStorage) Lock() (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, err
	}

	fl := flock.New(s.path + ".lock")

	locked, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		s.logger.Info("stash is locked by another linkstash process, waiting", "lock", fl.Path())
		if err := fl.Lock(); err != nil {
			return nil, err
		}
	}

	return fl.Unlock, nil
}
