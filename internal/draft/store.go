// Package draft implements the in-memory draft slot store: a fixed array of
// six named slots, a current-draft pointer and the working color map. All
// reads return deep copies; the store is the single authority for slot state.
package draft

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/palette-drafts/internal/model"
	"github.com/debemdeboas/palette-drafts/internal/persist"
)

var (
	ErrInvalidSlot = errors.New("slot id out of range")
	ErrEmptySlot   = errors.New("draft does not exist or is empty")
	ErrSlotsFull   = errors.New("all draft slots are full")
	ErrInvalidName = errors.New("draft name is empty")
)

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

// Patch is a shallow merge over a slot's mutable fields. Nil pointer fields
// are left untouched.
type Patch struct {
	Name      *string
	Colors    model.ColorMap
	Timestamp *int64
}

// RecordPatch builds a patch that overwrites all fields from a wire record,
// as done when merging remote drafts into local slots.
func RecordPatch(d model.Draft) Patch {
	name := d.Name
	ts := d.Timestamp
	return Patch{Name: &name, Colors: d.Colors.Clone(), Timestamp: &ts}
}

// Store holds the slot array, the current-draft pointer and the working
// colors. A zero current id means no draft is current. Construct one per
// session with New; there are no package-level singletons.
type Store struct {
	mu sync.RWMutex

	colors    model.ColorMap
	slots     [model.MaxDrafts]model.Draft
	currentID int

	mirror persist.Store
}

// New creates a store with all slots empty and the working colors set to the
// default palette. mirror may be nil to disable local persistence.
func New(mirror persist.Store) *Store {
	s := &Store{
		colors: model.DefaultColors(),
		mirror: mirror,
	}
	for i := range s.slots {
		s.slots[i] = model.EmptyDraft(i + 1)
	}
	return s
}

// Hydrate merges persisted records into the slots positionally. Records with
// ids outside 1..MaxDrafts are ignored; the slot count never changes.
func (s *Store) Hydrate() error {
	if s.mirror == nil {
		return nil
	}

	records, err := s.mirror.Load()
	if err != nil {
		return fmt.Errorf("error hydrating drafts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if rec.ID < 1 || rec.ID > model.MaxDrafts {
			continue
		}
		s.slots[rec.ID-1] = model.Draft{
			ID:        rec.ID,
			Name:      rec.Name,
			Colors:    rec.Colors.Clone(),
			Timestamp: rec.Timestamp,
		}
	}
	return nil
}

// flush mirrors the slots to local persistence. Callers hold the lock.
// A mirror failure never rolls back in-memory state; memory and disk may
// diverge until the next successful write.
func (s *Store) flush() error {
	if s.mirror == nil {
		return nil
	}

	records := make([]model.Draft, len(s.slots))
	for i, slot := range s.slots {
		records[i] = slot.Clone()
	}

	if err := s.mirror.Save(records); err != nil {
		storeLogger.Error().Err(err).Msg("Error mirroring drafts to local storage")
		return err
	}
	return nil
}

// GetAll returns a deep copy of all slots in id order.
func (s *Store) GetAll() []model.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	drafts := make([]model.Draft, len(s.slots))
	for i, slot := range s.slots {
		drafts[i] = slot.Clone()
	}
	return drafts
}

// Get returns a deep copy of slot id.
func (s *Store) Get(id int) (model.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !validID(id) {
		return model.Draft{}, false
	}
	return s.slots[id-1].Clone(), true
}

// Set merges the patch into slot id. It reports false for an out-of-range id
// and true otherwise; an existing snapshot is overwritten, never appended.
func (s *Store) Set(id int, patch Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validID(id) {
		return false
	}

	slot := &s.slots[id-1]
	if patch.Name != nil {
		slot.Name = *patch.Name
	}
	if patch.Colors != nil {
		slot.Colors = patch.Colors.Clone()
	}
	if patch.Timestamp != nil {
		slot.Timestamp = *patch.Timestamp
	}

	s.flush()
	return true
}

// Clear resets slot id to its empty default. The current-draft pointer is
// cleared iff it referenced this slot.
func (s *Store) Clear(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validID(id) {
		return false
	}

	s.slots[id-1] = model.EmptyDraft(id)
	if s.currentID == id {
		s.currentID = 0
	}

	s.flush()
	return true
}

// FirstEmptySlot returns the lowest id whose slot holds no colors, or -1
// when every slot is occupied.
func (s *Store) FirstEmptySlot() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.firstEmptyLocked()
}

func (s *Store) firstEmptyLocked() int {
	for i, slot := range s.slots {
		if slot.IsEmpty() {
			return i + 1
		}
	}
	return -1
}

// Current returns the current draft id, or 0 when none is set.
func (s *Store) Current() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// SetCurrent points the store at slot id. Only non-empty slots may become
// current; 0 clears the pointer.
func (s *Store) SetCurrent(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == 0 {
		s.currentID = 0
		return true
	}
	if !validID(id) || s.slots[id-1].IsEmpty() {
		return false
	}
	s.currentID = id
	return true
}

// Colors returns a deep copy of the working color map.
func (s *Store) Colors() model.ColorMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.colors.Clone()
}

// SetColor normalizes and stores one working color. Unknown keys and
// malformed values are rejected without touching state.
func (s *Store) SetColor(key, value string) error {
	if !model.IsColorKey(key) {
		return fmt.Errorf("unknown color key %q", key)
	}

	normalized, err := model.NormalizeHex(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors[key] = normalized
	return nil
}

// ResetColors restores the default palette and clears the current pointer.
func (s *Store) ResetColors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors = model.DefaultColors()
	s.currentID = 0
}

// SaveDraft snapshots the working colors into the first empty slot. When no
// slot is empty the caller's already-made overwrite decision selects slot 1
// or aborts with ErrSlotsFull; the store never evicts on its own. The target
// slot id is returned.
func (s *Store) SaveDraft(name string, overwriteFirst bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = "Draft " + time.Now().Format("15:04:05")
	}

	id := s.firstEmptyLocked()
	if id == -1 {
		if !overwriteFirst {
			return 0, ErrSlotsFull
		}
		id = 1
	}

	s.slots[id-1] = model.Draft{
		ID:        id,
		Name:      name,
		Colors:    s.colors.Clone(),
		Timestamp: time.Now().UnixMilli(),
	}
	s.currentID = id

	if err := s.flush(); err != nil {
		return id, fmt.Errorf("draft saved but not mirrored: %w", err)
	}

	storeLogger.Info().Int("slot", id).Str("name", name).Msg("Draft saved")
	return id, nil
}

// LoadDraft copies slot id's colors into the working map and makes it the
// current draft. Loading an empty or out-of-range slot is a no-op failure.
func (s *Store) LoadDraft(id int) (model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validID(id) {
		return model.Draft{}, ErrInvalidSlot
	}

	slot := s.slots[id-1]
	if slot.IsEmpty() {
		return model.Draft{}, ErrEmptySlot
	}

	s.colors = slot.Colors.Clone()
	s.currentID = id
	return slot.Clone(), nil
}

// DeleteDraft clears slot id. The confirmation decision belongs to the
// caller; by the time this runs the deletion is already decided.
func (s *Store) DeleteDraft(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validID(id) {
		return ErrInvalidSlot
	}
	if s.slots[id-1].IsEmpty() {
		return ErrEmptySlot
	}

	s.slots[id-1] = model.EmptyDraft(id)
	if s.currentID == id {
		s.currentID = 0
	}

	if err := s.flush(); err != nil {
		return fmt.Errorf("draft deleted but not mirrored: %w", err)
	}
	return nil
}

// RenameDraft sets a new name on a non-empty slot.
func (s *Store) RenameDraft(id int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validID(id) {
		return ErrInvalidSlot
	}
	if s.slots[id-1].IsEmpty() {
		return ErrEmptySlot
	}
	if name == "" {
		return ErrInvalidName
	}

	s.slots[id-1].Name = name

	if err := s.flush(); err != nil {
		return fmt.Errorf("draft renamed but not mirrored: %w", err)
	}
	return nil
}

// NonEmpty returns deep copies of all occupied slots in id order.
func (s *Store) NonEmpty() []model.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var drafts []model.Draft
	for _, slot := range s.slots {
		if !slot.IsEmpty() {
			drafts = append(drafts, slot.Clone())
		}
	}
	return drafts
}

func validID(id int) bool {
	return id >= 1 && id <= model.MaxDrafts
}
