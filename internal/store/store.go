// Package store persists whole documents (the match history, the player
// list, lifetime counters) under string keys.
package store

import (
	"context"
	"errors"
)

// Keys of the documents the application keeps.
const (
	HistoryKey  = "historique"
	PlayersKey  = "joueurs"
	CountersKey = "compteurs"
)

// ErrNotFound is returned by Load when no document exists under the key.
var ErrNotFound = errors.New("document not found")

// DocumentStore loads and saves documents. Load decodes into v, Save replaces
// the stored document with v.
type DocumentStore interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
}
