package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/debemdeboas/palette-drafts/internal/draft"
	"github.com/debemdeboas/palette-drafts/internal/model"
)

var (
	ErrNothingToBackup = errors.New("no drafts to back up")
	ErrRemoteEmpty     = errors.New("no drafts stored on the server")
	ErrRemoteNotFound  = errors.New("draft not found on the server")
)

// Coordinator runs the user-triggered data movement flows between a slot
// store and the remote draft service. Each flow performs one network round
// trip and reports any failure to the caller; nothing retries.
type Coordinator struct {
	store  *draft.Store
	client *Client
}

func NewCoordinator(store *draft.Store, client *Client) *Coordinator {
	return &Coordinator{store: store, client: client}
}

// Backup pushes every non-empty local slot as the canonical remote list.
// Empty slots are never transmitted. Returns the count stored remotely.
func (c *Coordinator) Backup(ctx context.Context) (int, error) {
	drafts := c.store.NonEmpty()
	if len(drafts) == 0 {
		return 0, ErrNothingToBackup
	}

	resp, err := c.client.PutDrafts(ctx, drafts)
	if err != nil {
		return 0, fmt.Errorf("backup failed: %w", err)
	}

	if resp.Count != len(drafts) {
		syncLogger.Warn().
			Int("sent", len(drafts)).
			Int("stored", resp.Count).
			Msg("Remote stored a different draft count than sent")
	}

	syncLogger.Info().Int("count", resp.Count).Msg("Drafts backed up to server")
	return resp.Count, nil
}

// Restore pulls the remote list and merges each record into the local slot
// with the matching id. Records whose id falls outside the slot range are
// silently ignored. The merge is slot-by-slot and not transactional: local
// slots merged before a failure stay merged.
func (c *Coordinator) Restore(ctx context.Context) (int, error) {
	env, err := c.client.GetDrafts(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore failed: %w", err)
	}
	if len(env.Drafts) == 0 {
		return 0, ErrRemoteEmpty
	}

	merged := 0
	for _, rec := range env.Drafts {
		if c.store.Set(rec.ID, draft.RecordPatch(rec)) {
			merged++
		}
	}

	syncLogger.Info().
		Int("received", len(env.Drafts)).
		Int("merged", merged).
		Msg("Drafts restored from server")
	return merged, nil
}

// SwitchDraft pulls one record by id from the remote list and merges it into
// the matching local slot. A missing id is a not-found failure, not an
// error in the transport sense.
func (c *Coordinator) SwitchDraft(ctx context.Context, id int) (model.Draft, error) {
	env, err := c.client.GetDrafts(ctx)
	if err != nil {
		return model.Draft{}, fmt.Errorf("load failed: %w", err)
	}
	if len(env.Drafts) == 0 {
		return model.Draft{}, ErrRemoteEmpty
	}

	for _, rec := range env.Drafts {
		if rec.ID == id {
			if !c.store.Set(rec.ID, draft.RecordPatch(rec)) {
				return model.Draft{}, draft.ErrInvalidSlot
			}
			syncLogger.Info().Int("slot", id).Str("name", rec.Name).Msg("Draft loaded from server")
			return rec.Clone(), nil
		}
	}
	return model.Draft{}, ErrRemoteNotFound
}

// SyncDraft pushes one non-empty local slot as a singleton list. Because the
// service has no partial-update mode, this replaces the entire remote list
// with just this draft.
func (c *Coordinator) SyncDraft(ctx context.Context, id int) error {
	slot, ok := c.store.Get(id)
	if !ok {
		return draft.ErrInvalidSlot
	}
	if slot.IsEmpty() {
		return draft.ErrEmptySlot
	}

	if _, err := c.client.PutDrafts(ctx, []model.Draft{slot}); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	syncLogger.Info().Int("slot", id).Str("name", slot.Name).Msg("Draft synced to server")
	return nil
}

// ClearRemote empties the remote store. The confirmation decision belongs
// to the caller.
func (c *Coordinator) ClearRemote(ctx context.Context) error {
	if _, err := c.client.ClearDrafts(ctx); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	syncLogger.Info().Msg("Server drafts cleared")
	return nil
}
