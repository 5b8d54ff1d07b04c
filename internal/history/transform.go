// Package history holds the match history: pure transforms over a
// tarot.History value and a Service that persists them.
package history

import (
	"slices"

	"github.com/tarota5/scores/internal/tarot"
)

// The transforms below never modify their input. Matches and hand lists are
// copied before any change so a caller may keep using the previous value.

// WithMatch appends m.
func WithMatch(h tarot.History, m tarot.Match) tarot.History {
	matches := make([]tarot.Match, 0, len(h.Matches)+1)
	matches = append(matches, h.Matches...)
	return tarot.History{Matches: append(matches, m)}
}

// WithHand appends hand to the match matchID. Unknown match ids leave the
// history unchanged.
func WithHand(h tarot.History, matchID string, hand tarot.Hand) tarot.History {
	return mapMatch(h, matchID, func(hands []tarot.Hand) []tarot.Hand {
		return append(slices.Clone(hands), hand)
	})
}

// WithEditedHand replaces the hand of the same id within matchID.
func WithEditedHand(h tarot.History, matchID string, hand tarot.Hand) tarot.History {
	return mapMatch(h, matchID, func(hands []tarot.Hand) []tarot.Hand {
		out := slices.Clone(hands)
		for i := range out {
			if out[i].ID == hand.ID {
				out[i] = hand
			}
		}
		return out
	})
}

// WithoutHand removes the hand handID from matchID.
func WithoutHand(h tarot.History, matchID, handID string) tarot.History {
	return mapMatch(h, matchID, func(hands []tarot.Hand) []tarot.Hand {
		out := make([]tarot.Hand, 0, len(hands))
		for _, hand := range hands {
			if hand.ID != handID {
				out = append(out, hand)
			}
		}
		return out
	})
}

// WithoutMatch removes the match and its hands. removed reports whether a
// match was found.
func WithoutMatch(h tarot.History, matchID string) (out tarot.History, removed bool) {
	matches := make([]tarot.Match, 0, len(h.Matches))
	for _, m := range h.Matches {
		if m.ID == matchID {
			removed = true
			continue
		}
		matches = append(matches, m)
	}
	return tarot.History{Matches: matches}, removed
}

// FindMatch returns the match matchID.
func FindMatch(h tarot.History, matchID string) (tarot.Match, bool) {
	for _, m := range h.Matches {
		if m.ID == matchID {
			return m, true
		}
	}
	return tarot.Match{}, false
}

// FindHand returns the hand handID of the match matchID.
func FindHand(h tarot.History, matchID, handID string) (tarot.Hand, bool) {
	m, ok := FindMatch(h, matchID)
	if !ok {
		return tarot.Hand{}, false
	}
	for _, hand := range m.Hands {
		if hand.ID == handID {
			return hand, true
		}
	}
	return tarot.Hand{}, false
}

func mapMatch(h tarot.History, matchID string, fn func([]tarot.Hand) []tarot.Hand) tarot.History {
	matches := make([]tarot.Match, len(h.Matches))
	for i, m := range h.Matches {
		if m.ID == matchID {
			m.Hands = fn(m.Hands)
		}
		matches[i] = m
	}
	return tarot.History{Matches: matches}
}
