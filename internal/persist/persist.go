// Package persist implements the local persistence adapter: a durable
// key-value mirror of the draft slot store, written after every successful
// mutation and read once at startup.
package persist

import (
	"github.com/rs/zerolog"

	"github.com/debemdeboas/palette-drafts/internal/model"
)

// DraftsKey is the single key under which the slot mirror is stored.
const DraftsKey = "tabGroupColorDrafts"

type Store interface {
	// Load returns the persisted draft records, or an empty list when
	// nothing has been stored yet.
	Load() ([]model.Draft, error)
	// Save replaces the persisted records with the given list.
	Save(drafts []model.Draft) error
}

var persistLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	persistLogger = l
}
