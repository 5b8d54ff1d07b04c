package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/vmihailenco/msgpack/v5"
)

var _ DocumentStore = (*SQLStore)(nil)

// SQLStore keeps documents as msgpack blobs in the documents table. Struct
// fields are encoded under their JSON names.
type SQLStore struct {
	db    *sql.DB
	clock quartz.Clock
}

// NewSQLStore creates a SQLStore over a database initialised by
// database.InitDB.
func NewSQLStore(db *sql.DB, clock quartz.Clock) *SQLStore {
	return &SQLStore{db: db, clock: clock}
}

func (s *SQLStore) Load(ctx context.Context, key string, v any) error {
	var body []byte
	err := s.db.QueryRowContext(ctx, "SELECT body FROM documents WHERE key = ?", key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", key, err)
	}
	dec := msgpack.NewDecoder(bytes.NewReader(body))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Save(ctx context.Context, key string, v any) error {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at;
	`, key, buf.Bytes(), s.clock.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	log.Debug("Saved document", "key", key, "bytes", buf.Len())
	return nil
}
