package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PGStore keeps save slots in the save_slots table. Run RunMigrations first.
// Blobs are stored as BYTEA so the checksum covers exactly what was written.
type PGStore struct {
	db *DB
}

func NewPGStore(db *DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Load(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.Pool.QueryRow(ctx,
		`SELECT data FROM save_slots WHERE slot = $1`, slot,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	return data, nil
}

func (s *PGStore) Save(ctx context.Context, slot string, data []byte) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO save_slots (slot, data, checksum, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (slot) DO UPDATE
		 SET data = EXCLUDED.data, checksum = EXCLUDED.checksum, updated_at = now()`,
		slot, data, checksum(data),
	)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}
