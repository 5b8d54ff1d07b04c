// Package stats derives player, match and global statistics from the match
// history. Everything is recomputed from the full history on each call.
package stats

import (
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/tarota5/scores/internal/tarot"
)

// playerAcc accumulates one player's counters during the scan.
type playerAcc struct {
	PlayerStats
}

// matchAcc accumulates the counters of the match being scanned.
type matchAcc struct {
	MatchStats
}

// Analyze scans every hand of every match. Indices that do not point at a
// seat of their match are skipped.
func Analyze(h tarot.History) Report {
	players := make(map[string]*playerAcc)
	var global GlobalStats
	matches := make([]MatchStats, 0, len(h.Matches))

	for _, m := range h.Matches {
		for _, name := range m.Players {
			acc, ok := players[name]
			if !ok {
				acc = &playerAcc{}
				players[name] = acc
			}
			acc.TotalMatches++
		}

		ma := &matchAcc{MatchStats: MatchStats{MatchID: m.ID, Hands: len(m.Hands)}}
		for _, hand := range m.Hands {
			scanHand(m, hand, players, ma)
		}
		matches = append(matches, ma.MatchStats)
		global.add(ma.MatchStats)
	}

	report := Report{
		Players: make(map[string]PlayerStats, len(players)),
		Matches: matches,
	}
	finish(players, &global)
	for name, acc := range players {
		report.Players[name] = acc.PlayerStats
	}
	report.Global = global
	return report
}

func scanHand(m tarot.Match, hand tarot.Hand, players map[string]*playerAcc, ma *matchAcc) {
	seat := func(i int) (*playerAcc, bool) {
		if i < 0 || i >= len(m.Players) {
			return nil, false
		}
		return players[m.Players[i]], true
	}

	taker, takerOK := seat(hand.Taker)
	partner, partnerOK := seat(hand.Partner)
	if !takerOK || !partnerOK {
		log.Debug("Skipping hand with invalid roles", "match", m.ID, "hand", hand.ID)
		return
	}
	taker.Taker++
	if !hand.Solo() {
		partner.Partner++
	}
	for i := range m.Players {
		if i != hand.Taker && i != hand.Partner {
			p, _ := seat(i)
			p.Defense++
		}
	}

	for i, score := range hand.Scores {
		p, ok := seat(i)
		if !ok {
			continue
		}
		if score >= 0 {
			p.PointsGained += score
			ma.PointsGained += score
		} else {
			p.PointsLost += score
			ma.PointsLost += score
		}
		p.WorstScore = min(p.WorstScore, score)
		p.BestScore = max(p.BestScore, score)
		ma.WorstScore = min(ma.WorstScore, score)
		ma.BestScore = max(ma.BestScore, score)
	}

	ma.AttackTrumps += hand.AttackTrumps

	if bonus, ok := hand.LastTrick.Get(); ok {
		if p, ok := seat(bonus.Holder); ok {
			if bonus.Won {
				p.LastTrickWon++
				ma.LastTrickWon++
			} else {
				p.LastTrickLost++
				ma.LastTrickLost++
			}
		}
	}

	for _, idx := range hand.Miseres {
		if p, ok := seat(idx); ok {
			p.Miseres++
			ma.Miseres++
		}
	}

	if hand.Bid != tarot.Slam && hand.Bid.Valid() {
		taker.Bids[hand.Bid-tarot.Small]++
		ma.Bids[hand.Bid-tarot.Small]++
	}
	if category, ok := slamCategory(hand); ok {
		taker.Slams[category]++
		if !hand.Solo() {
			partner.Slams[category]++
		}
		ma.Slams[category]++
	}

	for _, hf := range hand.Handfuls {
		p, ok := seat(hf.Index)
		if !ok || hf.Size == tarot.NoHandful || int(hf.Size) > len(p.Handfuls) {
			continue
		}
		p.Handfuls[hf.Size-tarot.SimpleHandful]++
		ma.Handfuls[hf.Size-tarot.SimpleHandful]++
	}
}

// slamCategory classifies the slam of a hand. On a Slam bid every outcome is
// counted, an unannounced failure falling in the unannounced bucket. On any
// other bid only an unannounced success counts.
func slamCategory(hand tarot.Hand) (int, bool) {
	slam, ok := hand.Slam.Get()
	if !ok {
		return 0, false
	}
	if hand.Bid != tarot.Slam {
		return SlamUnannouncedSuccess, !slam.Announced && slam.Succeeded
	}
	switch {
	case slam.Announced && slam.Succeeded:
		return SlamAnnouncedSuccess, true
	case slam.Announced:
		return SlamAnnouncedFailure, true
	default:
		return SlamUnannouncedSuccess, true
	}
}

func (g *GlobalStats) add(m MatchStats) {
	g.Hands += m.Hands
	g.AttackTrumps += m.AttackTrumps
	g.LastTrickWon += m.LastTrickWon
	g.LastTrickLost += m.LastTrickLost
	g.Miseres += m.Miseres
	g.PointsGained += m.PointsGained
	for i := range g.Bids {
		g.Bids[i] += m.Bids[i]
	}
	for i := range g.Handfuls {
		g.Handfuls[i] += m.Handfuls[i]
	}
	for i := range g.Slams {
		g.Slams[i] += m.Slams[i]
	}
	// Both start at 0, so a history where every match's best score is
	// negative reports a global best of 0.
	g.BestScore = max(g.BestScore, m.BestScore)
	g.WorstScore = min(g.WorstScore, m.WorstScore)
}

// finish derives net gains, medians and position scores once every hand has
// been scanned.
func finish(players map[string]*playerAcc, g *GlobalStats) {
	gains := make([]int, 0, len(players))
	perHand := make([]float64, 0, len(players))
	for _, p := range players {
		p.NetGain = p.PointsGained + p.PointsLost
		p.TotalHands = p.Taker + p.Partner + p.Defense
		if p.TotalHands > 0 {
			p.GainPerHand = float64(p.NetGain) / float64(p.TotalHands)
			perHand = append(perHand, p.GainPerHand)
		}
		g.MaxGain = max(g.MaxGain, p.NetGain)
		g.MinGain = min(g.MinGain, p.NetGain)
		gains = append(gains, p.NetGain)
	}
	slices.Sort(gains)
	slices.Sort(perHand)

	g.MedianGain = median(gains)
	g.MedianGainPerHand = median(perHand)
	if len(perHand) > 0 {
		g.MinGainPerHand = perHand[0]
		g.MaxGainPerHand = perHand[len(perHand)-1]
	}

	for _, p := range players {
		p.MedianGain = g.MedianGain
		p.MedianGainPerHand = g.MedianGainPerHand
		p.Decile = 5
		p.DecilePerHand = 5
		if len(players) < 2 || p.TotalHands == 0 {
			continue
		}
		p.Decile = position(float64(p.NetGain), float64(gains[0]), float64(gains[len(gains)-1]))
		p.DecilePerHand = position(p.GainPerHand, perHand[0], perHand[len(perHand)-1])
	}
}

// median returns the middle element of sorted, the upper one of the two
// middles for an even count, or zero when empty.
func median[T int | float64](sorted []T) T {
	var zero T
	if len(sorted) == 0 {
		return zero
	}
	return sorted[len(sorted)/2]
}

// position places v between lowest and highest as
// floor(10 * |a + v| / (a + b)) with a = |lowest| and b = |highest|. It is 5
// when a + b is zero.
func position(v, lowest, highest float64) int {
	a, b := math.Abs(lowest), math.Abs(highest)
	if a+b <= 0 {
		return 5
	}
	return int(10 * (math.Abs(a+v) / (a + b)))
}
