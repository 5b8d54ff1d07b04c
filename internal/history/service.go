package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/tarota5/scores/internal/metrics"
	"github.com/tarota5/scores/internal/scoring"
	"github.com/tarota5/scores/internal/store"
	"github.com/tarota5/scores/internal/tarot"
)

var (
	ErrInvalidPlayers = errors.New("a match needs five distinct players")
	ErrMatchNotFound  = errors.New("match not found")
	ErrHandNotFound   = errors.New("hand not found")

	// ErrUnreadableHistory is returned by mutators when the stored history
	// exists but cannot be decoded. Nothing is saved in that case.
	ErrUnreadableHistory = errors.New("stored history cannot be read")
)

// Service applies the transforms to the persisted history. Every mutation
// loads the document, transforms it and saves it back. Nothing is cached
// between calls so concurrent writers are last-writer-wins.
type Service struct {
	docs    store.DocumentStore
	clock   quartz.Clock
	metrics metrics.Metrics
}

func NewService(docs store.DocumentStore, clock quartz.Clock, m metrics.Metrics) *Service {
	return &Service{docs: docs, clock: clock, metrics: m}
}

// Load returns the persisted history. A missing or unreadable document
// yields an empty history.
func (s *Service) Load(ctx context.Context) tarot.History {
	h, err := s.load(ctx)
	if err != nil {
		return tarot.History{}
	}
	return h
}

// load is Load for mutators: a document that exists but cannot be read is
// an error, so that it is never overwritten by a smaller history.
func (s *Service) load(ctx context.Context) (tarot.History, error) {
	var h tarot.History
	err := s.docs.Load(ctx, store.HistoryKey, &h)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug("No history yet")
		return tarot.History{}, nil
	case err != nil:
		log.Warn("Failed to load history", "error", err)
		s.metrics.IncPersistenceFailure("load")
		return tarot.History{}, fmt.Errorf("%w: %w", ErrUnreadableHistory, err)
	}
	s.metrics.SetMatchesTracked(len(h.Matches))
	return h, nil
}

func (s *Service) save(ctx context.Context, h tarot.History) {
	if err := s.docs.Save(ctx, store.HistoryKey, h); err != nil {
		log.Error("Failed to save history", "error", err)
		s.metrics.IncPersistenceFailure("save")
		return
	}
	s.metrics.SetMatchesTracked(len(h.Matches))
}

// CreateMatch starts an empty match between five distinct players.
func (s *Service) CreateMatch(ctx context.Context, players []string) (tarot.Match, error) {
	if err := validatePlayers(players); err != nil {
		return tarot.Match{}, err
	}
	m := tarot.Match{
		ID:        uuid.NewString(),
		CreatedAt: s.clock.Now().UnixMilli(),
		Players:   append([]string(nil), players...),
		Hands:     []tarot.Hand{},
	}
	h, err := s.load(ctx)
	if err != nil {
		return tarot.Match{}, err
	}
	s.save(ctx, WithMatch(h, m))
	log.Info("Match created", "match", m.ID, "players", m.Players)
	return m, nil
}

func validatePlayers(players []string) error {
	if len(players) != tarot.SeatCount {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayers, len(players))
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == "" || seen[p] {
			return fmt.Errorf("%w: %q", ErrInvalidPlayers, p)
		}
		seen[p] = true
	}
	return nil
}

func (s *Service) AddHand(ctx context.Context, matchID string, hand tarot.Hand) (tarot.History, error) {
	return s.mutate(ctx, func(h tarot.History) tarot.History {
		return WithHand(h, matchID, hand)
	})
}

func (s *Service) EditHand(ctx context.Context, matchID string, hand tarot.Hand) (tarot.History, error) {
	return s.mutate(ctx, func(h tarot.History) tarot.History {
		return WithEditedHand(h, matchID, hand)
	})
}

func (s *Service) DeleteHand(ctx context.Context, matchID, handID string) (tarot.History, error) {
	return s.mutate(ctx, func(h tarot.History) tarot.History {
		return WithoutHand(h, matchID, handID)
	})
}

func (s *Service) mutate(ctx context.Context, apply func(tarot.History) tarot.History) (tarot.History, error) {
	h, err := s.load(ctx)
	if err != nil {
		return tarot.History{}, err
	}
	h = apply(h)
	s.save(ctx, h)
	return h, nil
}

// DeleteMatch removes a match and its hands. The history is saved only when
// something was removed.
func (s *Service) DeleteMatch(ctx context.Context, matchID string) (tarot.History, bool, error) {
	h, err := s.load(ctx)
	if err != nil {
		return tarot.History{}, false, err
	}
	h, removed := WithoutMatch(h, matchID)
	if removed {
		s.save(ctx, h)
		log.Info("Match deleted", "match", matchID)
	}
	return h, removed, nil
}

func (s *Service) FindMatch(ctx context.Context, matchID string) (tarot.Match, bool) {
	return FindMatch(s.Load(ctx), matchID)
}

func (s *Service) FindHand(ctx context.Context, matchID, handID string) (tarot.Hand, bool) {
	return FindHand(s.Load(ctx), matchID, handID)
}

// HandInput is what a player declares for a hand, by name. ReplaceID names
// an existing hand to overwrite; it keeps its id and creation time.
type HandInput struct {
	Taker        string
	Partner      string
	Bid          tarot.Bid
	AttackPoints int
	AttackTrumps int
	LastTrick    tarot.Optional[tarot.LastTrickBonus]
	Handfuls     map[string]tarot.HandfulSize
	Miseres      []string
	Slam         tarot.Optional[tarot.SlamOutcome]
	ReplaceID    string
}

// RecordHand scores in with engine and stores the resulting hand in the match.
func (s *Service) RecordHand(ctx context.Context, engine *scoring.Engine, matchID string, in HandInput) (tarot.Hand, error) {
	h, err := s.load(ctx)
	if err != nil {
		return tarot.Hand{}, err
	}
	m, ok := FindMatch(h, matchID)
	if !ok {
		return tarot.Hand{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	hand := tarot.Hand{
		ID:        uuid.NewString(),
		CreatedAt: s.clock.Now().UnixMilli(),
	}
	if in.ReplaceID != "" {
		prev, ok := FindHand(h, matchID, in.ReplaceID)
		if !ok {
			return tarot.Hand{}, fmt.Errorf("%w: %s", ErrHandNotFound, in.ReplaceID)
		}
		hand.ID = prev.ID
		hand.CreatedAt = prev.CreatedAt
	}

	scores, err := engine.Compute(scoring.Input{
		Players:      m.Players,
		Taker:        in.Taker,
		Partner:      in.Partner,
		Bid:          in.Bid,
		AttackPoints: in.AttackPoints,
		AttackTrumps: in.AttackTrumps,
		Miseres:      in.Miseres,
		LastTrick:    in.LastTrick,
		Slam:         in.Slam,
		Handfuls:     in.Handfuls,
	})
	if err != nil {
		s.metrics.IncScoringRejected()
		return tarot.Hand{}, err
	}

	hand.Taker = tarot.IndexOf(m.Players, in.Taker)
	hand.Partner = tarot.IndexOf(m.Players, in.Partner)
	hand.Bid = in.Bid
	hand.AttackPoints = in.AttackPoints
	hand.AttackTrumps = in.AttackTrumps
	hand.LastTrick = in.LastTrick
	hand.Slam = in.Slam
	hand.Scores = scores
	hand.Handfuls = []tarot.Handful{}
	for i, name := range m.Players {
		if size := in.Handfuls[name]; size != tarot.NoHandful {
			hand.Handfuls = append(hand.Handfuls, tarot.Handful{Index: i, Size: size})
		}
	}
	hand.Miseres = []int{}
	for _, name := range in.Miseres {
		if idx := tarot.IndexOf(m.Players, name); idx >= 0 {
			hand.Miseres = append(hand.Miseres, idx)
		}
	}

	if in.ReplaceID != "" {
		h = WithEditedHand(h, matchID, hand)
	} else {
		h = WithHand(h, matchID, hand)
	}
	s.save(ctx, h)
	s.metrics.IncHandsScored()
	log.Info("Hand recorded", "match", matchID, "hand", hand.ID, "bid", hand.Bid, "scores", hand.Scores)
	return hand, nil
}
