package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/debemdeboas/palette-drafts/internal/model"
)

type FileStore struct { // implements Store
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]model.Draft, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Draft{}, nil
		}
		return nil, fmt.Errorf("error reading drafts file: %w", err)
	}

	var drafts []model.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("error parsing drafts file: %w", err)
	}
	return drafts, nil
}

func (s *FileStore) Save(drafts []model.Draft) error {
	data, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding drafts: %w", err)
	}

	// Write to a temp file in the same directory and rename so a crash
	// mid-write never leaves a truncated mirror behind.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".drafts-*.json")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing drafts file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing drafts file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing drafts file: %w", err)
	}

	persistLogger.Debug().Str("path", s.path).Int("count", len(drafts)).Msg("Drafts mirrored to file")
	return nil
}
