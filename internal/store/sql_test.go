package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarota5/scores/internal/database"
	"github.com/tarota5/scores/internal/store"
	"github.com/tarota5/scores/internal/tarot"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (*store.SQLStore, *sql.DB, *quartz.Mock) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))
	return store.NewSQLStore(db, clock), db, clock
}

func TestSQLStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s, db, clock := setupTestDB(t)

	history := tarot.History{Matches: []tarot.Match{{
		ID:        "m1",
		CreatedAt: 1,
		Players:   []string{"A", "B", "C", "D", "E"},
		Hands: []tarot.Hand{{
			ID:           "h1",
			Taker:        0,
			Partner:      1,
			Bid:          tarot.Guard,
			AttackPoints: 50,
			AttackTrumps: 2,
			LastTrick:    tarot.Some(tarot.LastTrickBonus{Holder: 1, Won: true}),
			Handfuls:     []tarot.Handful{{Index: 3, Size: tarot.DoubleHandful}},
			Miseres:      []int{4},
			Scores:       []int{136, 68, -68, -68, -68},
		}},
	}}}
	require.NoError(t, s.Save(ctx, store.HistoryKey, history))

	var loaded tarot.History
	require.NoError(t, s.Load(ctx, store.HistoryKey, &loaded))
	assert.Equal(t, history, loaded)

	var updatedAt int64
	require.NoError(t, db.QueryRow("SELECT updated_at FROM documents WHERE key = ?", store.HistoryKey).Scan(&updatedAt))
	assert.Equal(t, clock.Now().UnixMilli(), updatedAt)
}

func TestSQLStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s, db, _ := setupTestDB(t)

	require.NoError(t, s.Save(ctx, store.PlayersKey, []tarot.Player{{ID: "1", Name: "A"}}))
	require.NoError(t, s.Save(ctx, store.PlayersKey, []tarot.Player{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}}))

	var loaded []tarot.Player
	require.NoError(t, s.Load(ctx, store.PlayersKey, &loaded))
	assert.Len(t, loaded, 2)
	assert.Equal(t, "Alice", loaded[0].Name)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLStore_LoadMissing(t *testing.T) {
	s, _, _ := setupTestDB(t)

	var h tarot.History
	err := s.Load(context.Background(), store.HistoryKey, &h)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_LoadCorrupt(t *testing.T) {
	s, db, _ := setupTestDB(t)
	_, err := db.Exec("INSERT INTO documents (key, body, updated_at) VALUES (?, ?, 0)", store.HistoryKey, []byte{0xc1})
	require.NoError(t, err)

	var h tarot.History
	err = s.Load(context.Background(), store.HistoryKey, &h)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
