package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"i18n-helper/internal/index"
	"i18n-helper/internal/textutil"
	"i18n-helper/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const insertBatchSize = 500

const schema = `
CREATE TABLE IF NOT EXISTS translation_keys (
	key         TEXT PRIMARY KEY,
	value       JSONB NOT NULL,
	value_hash  TEXT NOT NULL,
	source      TEXT NOT NULL,
	exported_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertKey = `
INSERT INTO translation_keys (key, value, value_hash, source)
VALUES ($1, $2, $3, $4)`

// Row is one exported key as stored in PostgreSQL.
type Row struct {
	Key        string
	Value      any
	ValueHash  string
	Source     string
	ExportedAt time.Time
}

// SnapshotStore keeps the latest snapshot of the index in PostgreSQL.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

// NewSnapshotStore creates a new snapshot store.
func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// EnsureSchema creates the translation_keys table.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create translation_keys: %w", err)
	}
	return nil
}

// Replace swaps the stored snapshot for records in a single transaction.
func (s *SnapshotStore) Replace(ctx context.Context, records []index.Record) error {
	rows := make([]encodedRow, 0, len(records))
	for _, r := range records {
		row, err := toRow(r)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM translation_keys"); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	for _, chunk := range worker.Batch(rows, insertBatchSize) {
		batch := &pgx.Batch{}
		for _, row := range chunk {
			batch.Queue(insertKey, row.Key, row.json, row.ValueHash, row.Source)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert snapshot rows: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	log.Info().Int("keys", len(rows)).Msg("Stored translation snapshot")
	return nil
}

// List returns the stored snapshot ordered by key.
func (s *SnapshotStore) List(ctx context.Context) ([]Row, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT key, value::text, value_hash, source, exported_at
		FROM translation_keys
		ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (Row, error) {
		var (
			row Row
			raw string
		)
		if err := r.Scan(&row.Key, &raw, &row.ValueHash, &row.Source, &row.ExportedAt); err != nil {
			return Row{}, err
		}
		if err := json.Unmarshal([]byte(raw), &row.Value); err != nil {
			return Row{}, fmt.Errorf("decode value of %q: %w", row.Key, err)
		}
		return row, nil
	})
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return out, nil
}

// encodedRow is a Row with its value already serialized for the JSONB column.
type encodedRow struct {
	Row
	json string
}

func toRow(r index.Record) (encodedRow, error) {
	encoded, err := json.Marshal(r.Value)
	if err != nil {
		return encodedRow{}, fmt.Errorf("encode value of %q: %w", r.Key, err)
	}
	return encodedRow{
		Row: Row{
			Key:       r.Key,
			Value:     r.Value,
			ValueHash: textutil.Hash(string(encoded)),
			Source:    r.Source,
		},
		json: string(encoded),
	}, nil
}
