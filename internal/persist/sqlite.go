package persist

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/debemdeboas/palette-drafts/internal/db"
	"github.com/debemdeboas/palette-drafts/internal/model"
	"github.com/debemdeboas/palette-drafts/internal/util/compression"
)

type SQLiteStore struct { // implements Store
	db         db.DB
	compressor compression.Compressor
}

func NewSQLiteStore(database db.DB) *SQLiteStore {
	return &SQLiteStore{
		db:         database,
		compressor: compression.ZstdCompressor{},
	}
}

func (s *SQLiteStore) Load() ([]model.Draft, error) {
	var compressed []byte
	row := s.db.QueryRow(`SELECT payload FROM drafts WHERE key = ?`, DraftsKey)
	if err := row.Scan(&compressed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Draft{}, nil
		}
		return nil, fmt.Errorf("error reading drafts row: %w", err)
	}

	payload, err := s.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing drafts: %w", err)
	}

	var drafts []model.Draft
	if err := json.Unmarshal(payload, &drafts); err != nil {
		return nil, fmt.Errorf("error parsing drafts payload: %w", err)
	}
	return drafts, nil
}

func (s *SQLiteStore) Save(drafts []model.Draft) error {
	payload, err := json.Marshal(drafts)
	if err != nil {
		return fmt.Errorf("error encoding drafts: %w", err)
	}

	compressed, err := s.compressor.Compress(payload)
	if err != nil {
		return fmt.Errorf("error compressing drafts: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO drafts (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		DraftsKey, compressed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving drafts row: %w", err)
	}

	persistLogger.Debug().Int("count", len(drafts)).Msg("Drafts mirrored to database")
	return nil
}
