package players

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarota5/scores/internal/metrics"
	"github.com/tarota5/scores/internal/store"
	"github.com/tarota5/scores/internal/tarot"
)

func setupRegistry(t *testing.T) (*Registry, *store.Mock, *metrics.Mock) {
	t.Helper()
	docs := store.NewMock()
	m := metrics.NewMock()
	return NewRegistry(docs, m), docs, m
}

func TestList_SeedsOnFirstUse(t *testing.T) {
	ctx := context.Background()
	r, docs, _ := setupRegistry(t)

	list := r.List(ctx)
	require.Len(t, list, 16)
	assert.Equal(t, tarot.Player{ID: "0a1b2c3d-4e5f-4a6b-8c7d-90ab12cd34ef", Name: "Yannick"}, list[0])
	assert.Equal(t, "Alexis G", list[15].Name)
	assert.Equal(t, []string{store.PlayersKey}, docs.SaveCalls)

	again := r.List(ctx)
	assert.Equal(t, list, again)
	assert.Len(t, docs.SaveCalls, 1, "seed is written once")
}

func TestList_CorruptDocument(t *testing.T) {
	r, docs, m := setupRegistry(t)
	docs.Put(store.PlayersKey, `[{"id": `)

	assert.Empty(t, r.List(context.Background()))
	assert.Empty(t, docs.SaveCalls, "a corrupt list is never overwritten by the seed")
	assert.Equal(t, 1, m.PersistenceFailures("load"))
}

func TestFormatName(t *testing.T) {
	tests := map[string]string{
		"  jEAN  ":   "Jean",
		"éloïse":     "Éloïse",
		"ALEXIS G":   "Alexis g",
		"":           "",
		"   ":        "",
		"marie-anne": "Marie-anne",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatName(in), "input %q", in)
	}
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupRegistry(t)
	r.save(ctx, []tarot.Player{{ID: "1", Name: "Yannick"}})

	p, err := r.Add(ctx, "  léa ")
	require.NoError(t, err)
	assert.Equal(t, "Léa", p.Name)
	assert.Len(t, p.ID, 36)

	list := r.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, p, list[1])

	_, err = r.Add(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = r.Add(ctx, "YANNICK")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupRegistry(t)
	r.save(ctx, []tarot.Player{{ID: "1", Name: "Yannick"}, {ID: "2", Name: "Martin"}})

	p, err := r.Rename(ctx, "1", "yann")
	require.NoError(t, err)
	assert.Equal(t, tarot.Player{ID: "1", Name: "Yann"}, p)
	assert.Equal(t, "Yann", r.List(ctx)[0].Name)

	_, err = r.Rename(ctx, "9", "Paul")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Rename(ctx, "1", "martin")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = r.Rename(ctx, "1", "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = r.Rename(ctx, "2", "MARTIN")
	assert.NoError(t, err, "renaming to its own name is allowed")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupRegistry(t)
	r.save(ctx, []tarot.Player{{ID: "1", Name: "Yannick"}, {ID: "2", Name: "Martin"}})

	h := tarot.History{Matches: []tarot.Match{{ID: "m", Players: []string{"Yannick", "A", "B", "C", "D"}}}}

	err := r.Delete(ctx, "1", h)
	assert.ErrorIs(t, err, ErrInUse)

	require.NoError(t, r.Delete(ctx, "2", h))
	assert.Equal(t, []tarot.Player{{ID: "1", Name: "Yannick"}}, r.List(ctx))

	assert.ErrorIs(t, r.Delete(ctx, "2", h), ErrNotFound)
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupRegistry(t)

	p, err := r.Find(ctx, "alexis g")
	require.NoError(t, err)
	assert.Equal(t, "6a5b4c3d-2e1f-47b2-9a8b-334455667788", p.ID)

	p, err = r.Find(ctx, "5f6e7d8c-9a0b-4c1d-9b8a-fedcba987654")
	require.NoError(t, err)
	assert.Equal(t, "Martin", p.Name)

	_, err = r.Find(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSorted(t *testing.T) {
	list := []tarot.Player{{ID: "1", Name: "martin"}, {ID: "2", Name: "Arthur"}, {ID: "3", Name: "camille"}}

	sorted := Sorted(list, true)
	assert.Equal(t, []string{"Arthur", "camille", "martin"}, names(sorted))
	assert.Equal(t, []string{"martin", "Arthur", "camille"}, names(Sorted(list, false)))
	assert.Equal(t, "martin", list[0].Name, "input is not reordered")
}

func names(list []tarot.Player) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Name
	}
	return out
}

func TestInHistory(t *testing.T) {
	h := tarot.History{Matches: []tarot.Match{
		{Players: []string{"A", "B", "C", "D", "E"}},
		{Players: []string{"A", "F", "G", "H", "I"}},
	}}
	set := InHistory(h)
	assert.Len(t, set, 9)
	assert.True(t, set["F"])
	assert.False(t, set["Z"])
}
