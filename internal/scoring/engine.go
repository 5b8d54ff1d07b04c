package scoring

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tarota5/scores/internal/tarot"
)

// ErrInvalidInput is returned when a hand cannot be scored at all.
var ErrInvalidInput = errors.New("invalid scoring input")

// Input holds the declared facts of one hand. Players are referred to by name.
type Input struct {
	Players      []string
	Taker        string
	Partner      string
	Bid          tarot.Bid
	AttackPoints int
	AttackTrumps int
	Miseres      []string
	LastTrick    tarot.Optional[tarot.LastTrickBonus]
	Slam         tarot.Optional[tarot.SlamOutcome]
	Handfuls     map[string]tarot.HandfulSize

	// HandfulValues overrides the constants' poignee_values when non-nil.
	HandfulValues map[string]int
}

// Engine computes zero-sum score vectors.
type Engine struct {
	constants Constants
}

// NewEngine creates an Engine bound to a set of constants.
func NewEngine(constants Constants) *Engine {
	return &Engine{constants: constants}
}

// Constants returns the constants the engine scores with.
func (e *Engine) Constants() Constants {
	return e.constants
}

// Margin returns by how many points the contract was made (>= 0) or failed (< 0).
func (e *Engine) Margin(points, trumps int) int {
	return points - e.constants.Threshold(trumps)
}

// Compute scores a hand. The returned vector is aligned on in.Players and
// always sums to zero.
func (e *Engine) Compute(in Input) ([]int, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	taker := tarot.IndexOf(in.Players, in.Taker)
	partner := tarot.IndexOf(in.Players, in.Partner)
	log.Debug("Scoring hand", "players", in.Players, "taker", in.Taker, "partner", in.Partner,
		"bid", in.Bid, "points", in.AttackPoints, "bouts", in.AttackTrumps)

	weights := distributionWeights(len(in.Players), taker, partner)
	multiplier := e.constants.Multiplier(in.Bid)
	slamBid := in.Bid == tarot.Slam

	delta := e.Margin(in.AttackPoints, in.AttackTrumps)
	base := e.constants.Base + abs(delta)
	if slamBid {
		base = e.constants.Base
	}
	sign := 1
	if slamBid {
		if slam, ok := in.Slam.Get(); !ok || !slam.Succeeded {
			sign = -1
		}
	} else if delta < 0 {
		sign = -1
	}
	round := base * multiplier * sign

	scores := make([]int, len(in.Players))
	addWeighted(scores, weights, round)
	log.Debug("Base distribution", "delta", delta, "multiplier", multiplier, "round", round, "scores", scores)

	e.applyLastTrick(in, scores, weights, multiplier, taker, partner, slamBid)
	e.applyHandfuls(in, scores, weights, sign, taker, partner)
	e.applyMiseres(in, scores)
	e.applySlam(in, scores, weights)

	if sum := sumOf(scores); sum != 0 {
		scores[taker] -= sum
		log.Debug("Zero-sum correction applied to taker", "residual", sum)
	}
	log.Debug("Final scores", "scores", scores)
	return scores, nil
}

func validate(in Input) error {
	if len(in.Players) != tarot.SeatCount {
		return fmt.Errorf("%w: need %d players, got %d", ErrInvalidInput, tarot.SeatCount, len(in.Players))
	}
	seen := make(map[string]bool, len(in.Players))
	for _, p := range in.Players {
		if seen[p] {
			return fmt.Errorf("%w: duplicate player %q", ErrInvalidInput, p)
		}
		seen[p] = true
	}
	if !seen[in.Taker] {
		return fmt.Errorf("%w: taker %q is not seated", ErrInvalidInput, in.Taker)
	}
	if !seen[in.Partner] {
		return fmt.Errorf("%w: partner %q is not seated", ErrInvalidInput, in.Partner)
	}
	if !in.Bid.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, in.Bid)
	}
	return nil
}

// distributionWeights gives the share of each seat: the solo taker carries
// the four defenders, otherwise the taker counts double and the partner once.
func distributionWeights(n, taker, partner int) []int {
	weights := make([]int, n)
	for i := range weights {
		weights[i] = -1
	}
	if taker == partner {
		weights[taker] = n - 1
		return weights
	}
	weights[taker] = 2
	weights[partner] = 1
	return weights
}

func (e *Engine) applyLastTrick(in Input, scores, weights []int, multiplier, taker, partner int, slamBid bool) {
	bonus, ok := in.LastTrick.Get()
	if !ok {
		return
	}
	if bonus.Holder < 0 || bonus.Holder >= len(in.Players) {
		log.Debug("Ignoring last trick bonus with invalid holder", "holder", bonus.Holder)
		return
	}
	attackHasIt := bonus.Holder == taker || bonus.Holder == partner
	direction := 1
	if slamBid {
		if !bonus.Won {
			direction = -direction
		}
		if !attackHasIt {
			direction = -direction
		}
	} else {
		attackWins := (attackHasIt && bonus.Won) || (!attackHasIt && !bonus.Won)
		if !attackWins {
			direction = -1
		}
	}
	value := e.constants.LastTrickBonus * multiplier
	addWeighted(scores, weights, direction*value)
	log.Debug("Last trick bonus applied", "holder", bonus.Holder, "won", bonus.Won, "value", value, "scores", scores)
}

func (e *Engine) applyHandfuls(in Input, scores, weights []int, contractSign, taker, partner int) {
	values := in.HandfulValues
	if values == nil {
		values = e.constants.HandfulValues
	}
	for i, name := range in.Players {
		size, declared := in.Handfuls[name]
		if !declared || size == tarot.NoHandful {
			continue
		}
		value, ok := values[size.String()]
		if !ok || value == 0 {
			log.Debug("Ignoring handful without value", "player", name, "size", size)
			continue
		}
		direction := contractSign
		if e.constants.HandfulToDeclarer {
			direction = 1
			if i != taker && i != partner {
				direction = -1
			}
		}
		addWeighted(scores, weights, direction*value)
		log.Debug("Handful applied", "player", name, "size", size, "value", value, "scores", scores)
	}
}

func (e *Engine) applyMiseres(in Input, scores []int) {
	penalty := e.constants.MiserePenalty
	gain := penalty * (len(in.Players) - 1)
	for _, name := range in.Miseres {
		idx := tarot.IndexOf(in.Players, name)
		if idx < 0 {
			log.Debug("Ignoring misere from unknown player", "player", name)
			continue
		}
		for i := range scores {
			if i != idx {
				scores[i] -= penalty
			}
		}
		scores[idx] += gain
		log.Debug("Misere applied", "player", name, "scores", scores)
	}
}

func (e *Engine) applySlam(in Input, scores, weights []int) {
	slam, ok := in.Slam.Get()
	if !ok {
		return
	}
	value := e.constants.SlamBonus(slam)
	if value == 0 {
		log.Debug("Ignoring slam without value", "announced", slam.Announced, "succeeded", slam.Succeeded)
		return
	}
	if !slam.Succeeded {
		value = -value
	}
	addWeighted(scores, weights, value)
	log.Debug("Slam applied", "announced", slam.Announced, "succeeded", slam.Succeeded, "scores", scores)
}

// SlamBonus returns the magnitude of the slam bonus for an outcome. An
// unannounced failure is worth nothing.
func (c Constants) SlamBonus(slam tarot.SlamOutcome) int {
	switch {
	case slam.Announced && slam.Succeeded:
		return c.Slam.AnnouncedSuccess
	case !slam.Announced && slam.Succeeded:
		return c.Slam.UnannouncedSuccess
	case slam.Announced && !slam.Succeeded:
		return abs(c.Slam.AnnouncedFailure)
	default:
		return 0
	}
}

func addWeighted(scores, weights []int, value int) {
	for i := range scores {
		scores[i] += weights[i] * value
	}
}

func sumOf(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
