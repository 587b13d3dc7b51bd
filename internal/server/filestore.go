package server

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/debemdeboas/palette-drafts/internal/model"
)

// DraftFile is the single JSON document backing the service. Reads and
// writes go through a process-local mutex so concurrent handler goroutines
// can't interleave a read-modify-write; there is still no cross-process or
// cross-client coordination (last writer wins, see the package doc).
type DraftFile struct {
	mu   sync.Mutex
	path string
}

func NewDraftFile(path string) *DraftFile {
	return &DraftFile{path: path}
}

// ensure creates the file with an empty draft list if it doesn't exist.
// Callers hold the lock.
func (f *DraftFile) ensure() error {
	if _, err := os.Stat(f.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking drafts file: %w", err)
	}

	empty := model.DraftsEnvelope{Drafts: []model.Draft{}}
	data, err := json.MarshalIndent(empty, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}

// Read returns the current envelope, initializing the file first if absent.
func (f *DraftFile) Read() (model.DraftsEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

func (f *DraftFile) readLocked() (model.DraftsEnvelope, error) {
	if err := f.ensure(); err != nil {
		return model.DraftsEnvelope{}, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return model.DraftsEnvelope{}, fmt.Errorf("error reading drafts file: %w", err)
	}

	var env model.DraftsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.DraftsEnvelope{}, fmt.Errorf("error parsing drafts file: %w", err)
	}
	if env.Drafts == nil {
		env.Drafts = []model.Draft{}
	}
	return env, nil
}

// Write replaces the whole document. The previous content is discarded
// entirely; there is no merge and no versioning.
func (f *DraftFile) Write(env model.DraftsEnvelope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(env)
}

func (f *DraftFile) writeLocked(env model.DraftsEnvelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding drafts file: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("error writing drafts file: %w", err)
	}
	return nil
}

// Raw returns the file's current bytes for backup downloads.
func (f *DraftFile) Raw() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensure(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("error reading drafts file: %w", err)
	}
	return data, nil
}
