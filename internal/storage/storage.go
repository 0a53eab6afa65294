package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/kshyr/linkstash/internal/model"
)

const (
	appDirName    = "linkstash"
	stashFileName = "stash.json"
)

// ErrSave wraps any failure to write the stash file.
var ErrSave = errors.New("saving stash")

// Storage defines the interface for persisting the stash.
type Storage interface {
	Load() *model.Stash
	Save(stash *model.Stash) error
	Lock() (unlock func() error, err error)
}

// JSONStorage implements Storage using a JSON file holding an array of links.
type JSONStorage struct {
	path   string
	logger *log.Logger
}

// NewJSONStorage creates a new JSONStorage with the given file path.
// A nil logger uses the default logger.
func NewJSONStorage(path string, logger *log.Logger) *JSONStorage {
	if logger == nil {
		logger = log.Default()
	}
	return &JSONStorage{path: path, logger: logger}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the stash from the JSON file.
// A missing, unreadable or corrupt file yields an empty stash; the fallback is logged.
func (s *JSONStorage) Load() *model.Stash {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("stash file missing, starting empty", "path", s.path)
		} else {
			s.logger.Warn("stash file unreadable, starting empty", "path", s.path, "err", err)
		}
		return model.NewStash(nil)
	}

	var links []model.Link
	if err := json.Unmarshal(data, &links); err != nil {
		s.logger.Warn("stash file is not a JSON array of links, starting empty", "path", s.path, "err", err)
		return model.NewStash(nil)
	}

	s.logger.Debug("stash loaded", "path", s.path, "links", len(links))
	return model.NewStash(links)
}

// Save overwrites the JSON file with the full stash.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(stash *model.Stash) error {
	if err := s.write(stash); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

func (s *JSONStorage) write(stash *model.Stash) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	links := stash.Links
	if links == nil {
		links = []model.Link{}
	}

	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}

	s.logger.Debug("stash saved", "path", s.path, "links", len(links))
	return nil
}

// AppDir returns the per-OS application config directory, creating it if absent.
// On Linux this is ~/.config/linkstash.
func AppDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultStashPath returns the default stash path: <config dir>/linkstash/stash.json
func DefaultStashPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stashFileName), nil
}
