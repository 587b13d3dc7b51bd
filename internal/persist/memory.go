package persist

import (
	"github.com/debemdeboas/palette-drafts/internal/cache"
	"github.com/debemdeboas/palette-drafts/internal/model"
)

// MemoryStore keeps the mirror in process memory. Used in tests and for
// ephemeral runs where durability doesn't matter.
type MemoryStore struct { // implements Store
	items *cache.Cache[string, []model.Draft]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: cache.NewCache[string, []model.Draft](),
	}
}

func (s *MemoryStore) Load() ([]model.Draft, error) {
	drafts, ok := s.items.Get(DraftsKey)
	if !ok {
		return []model.Draft{}, nil
	}
	return model.CloneDrafts(drafts), nil
}

func (s *MemoryStore) Save(drafts []model.Draft) error {
	s.items.Set(DraftsKey, model.CloneDrafts(drafts))
	return nil
}
