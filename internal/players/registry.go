// Package players manages the list of registered players.
package players

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tarota5/scores/internal/metrics"
	"github.com/tarota5/scores/internal/store"
	"github.com/tarota5/scores/internal/tarot"
)

var (
	ErrEmptyName     = errors.New("player name is empty")
	ErrDuplicateName = errors.New("player name already taken")
	ErrNotFound      = errors.New("player not found")
	ErrInUse         = errors.New("player appears in the match history")
)

// Registry loads and saves the player list. Like the history it is read
// from the store on every call.
type Registry struct {
	docs    store.DocumentStore
	metrics metrics.Metrics
}

func NewRegistry(docs store.DocumentStore, m metrics.Metrics) *Registry {
	return &Registry{docs: docs, metrics: m}
}

// List returns the players in registration order. The first call on an empty
// store writes the seed list.
func (r *Registry) List(ctx context.Context) []tarot.Player {
	var list []tarot.Player
	err := r.docs.Load(ctx, store.PlayersKey, &list)
	switch {
	case errors.Is(err, store.ErrNotFound):
		list = Seed()
		log.Info("Seeding player list", "players", len(list))
		r.save(ctx, list)
		return list
	case err != nil:
		log.Warn("Failed to load players", "error", err)
		r.metrics.IncPersistenceFailure("load")
		return []tarot.Player{}
	}
	return list
}

func (r *Registry) save(ctx context.Context, list []tarot.Player) {
	if err := r.docs.Save(ctx, store.PlayersKey, list); err != nil {
		log.Error("Failed to save players", "error", err)
		r.metrics.IncPersistenceFailure("save")
	}
}

// FormatName trims raw, lowercases it and capitalises the first letter.
func FormatName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	first, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToTitle(first)) + name[size:]
}

// Add registers a new player under a fresh id.
func (r *Registry) Add(ctx context.Context, raw string) (tarot.Player, error) {
	name := FormatName(raw)
	if name == "" {
		return tarot.Player{}, ErrEmptyName
	}
	list := r.List(ctx)
	if slices.ContainsFunc(list, func(p tarot.Player) bool { return strings.EqualFold(p.Name, name) }) {
		return tarot.Player{}, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	p := tarot.Player{ID: uuid.NewString(), Name: name}
	r.save(ctx, append(list, p))
	log.Info("Player added", "id", p.ID, "name", p.Name)
	return p, nil
}

// Rename changes the name of player id. Matches already played keep the
// name the player had at the time.
func (r *Registry) Rename(ctx context.Context, id, raw string) (tarot.Player, error) {
	name := FormatName(raw)
	if name == "" {
		return tarot.Player{}, ErrEmptyName
	}
	list := r.List(ctx)
	idx := slices.IndexFunc(list, func(p tarot.Player) bool { return p.ID == id })
	if idx < 0 {
		return tarot.Player{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if slices.ContainsFunc(list, func(p tarot.Player) bool { return strings.EqualFold(p.Name, name) && p.ID != id }) {
		return tarot.Player{}, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	list[idx].Name = name
	r.save(ctx, list)
	log.Info("Player renamed", "id", id, "name", name)
	return list[idx], nil
}

// Delete removes player id unless its name appears in a match of h.
func (r *Registry) Delete(ctx context.Context, id string, h tarot.History) error {
	list := r.List(ctx)
	idx := slices.IndexFunc(list, func(p tarot.Player) bool { return p.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if InHistory(h)[list[idx].Name] {
		return fmt.Errorf("%w: %s", ErrInUse, list[idx].Name)
	}
	name := list[idx].Name
	r.save(ctx, slices.Delete(list, idx, idx+1))
	log.Info("Player deleted", "id", id, "name", name)
	return nil
}

// Find returns the player with the given id, or failing that, the given name
// compared without case.
func (r *Registry) Find(ctx context.Context, idOrName string) (tarot.Player, error) {
	list := r.List(ctx)
	for _, p := range list {
		if p.ID == idOrName {
			return p, nil
		}
	}
	name := strings.TrimSpace(idOrName)
	for _, p := range list {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return tarot.Player{}, fmt.Errorf("%w: %s", ErrNotFound, idOrName)
}

// InHistory returns the set of names seated in at least one match.
func InHistory(h tarot.History) map[string]bool {
	names := make(map[string]bool)
	for _, m := range h.Matches {
		for _, p := range m.Players {
			names[p] = true
		}
	}
	return names
}

// Sorted returns a copy of list, alphabetically ordered ignoring case when
// alphabetical is set, in registration order otherwise.
func Sorted(list []tarot.Player, alphabetical bool) []tarot.Player {
	out := slices.Clone(list)
	if alphabetical {
		slices.SortStableFunc(out, func(a, b tarot.Player) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
	return out
}
