package metrics

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tarota5/scores/internal/store"
)

// counterStore keeps counters as a single document.
type counterStore struct {
	docs store.DocumentStore
	mu   sync.Mutex
}

// New creates a CounterStore persisted in docs.
func New(docs store.DocumentStore) CounterStore {
	return &counterStore{
		docs: docs,
	}
}

// Increment loads the counters, increments key by one and saves them back.
func (s *counterStore) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	counters, err := s.load(ctx)
	if err != nil {
		log.Error("Failed to load counters for increment", "error", err, "key", key)
		return
	}
	counters[key]++
	if err := s.docs.Save(ctx, store.CountersKey, counters); err != nil {
		log.Error("Failed to save counters", "error", err, "key", key)
		return
	}
	log.Debug("Incremented metric", "key", key)
}

// GetAll returns all persisted counters.
func (s *counterStore) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(context.Background())
}

func (s *counterStore) load(ctx context.Context) (map[string]int, error) {
	counters := make(map[string]int)
	err := s.docs.Load(ctx, store.CountersKey, &counters)
	if errors.Is(err, store.ErrNotFound) {
		return make(map[string]int), nil
	}
	if err != nil {
		return nil, err
	}
	if counters == nil {
		counters = make(map[string]int)
	}
	return counters, nil
}
