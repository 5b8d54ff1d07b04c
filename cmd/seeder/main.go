package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/tarota5/scores/internal/cli"
	"github.com/tarota5/scores/internal/config"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/tarot"
)

const (
	numMatches    = 40
	handsPerMatch = 15
)

// randomHand draws a plausible hand for the five players of m.
func randomHand(r *rand.Rand, m tarot.Match) history.HandInput {
	bids := []tarot.Bid{tarot.Small, tarot.Small, tarot.Guard, tarot.Guard, tarot.GuardWithout, tarot.GuardAgainst}
	in := history.HandInput{
		Taker:        m.Players[r.Intn(len(m.Players))],
		Partner:      m.Players[r.Intn(len(m.Players))],
		Bid:          bids[r.Intn(len(bids))],
		AttackPoints: 25 + r.Intn(50),
		AttackTrumps: r.Intn(4),
		Handfuls:     map[string]tarot.HandfulSize{},
	}
	if r.Intn(8) == 0 {
		in.LastTrick = tarot.Some(tarot.LastTrickBonus{Holder: r.Intn(len(m.Players)), Won: r.Intn(2) == 0})
	}
	if r.Intn(6) == 0 {
		in.Handfuls[m.Players[r.Intn(len(m.Players))]] = tarot.HandfulSizes[r.Intn(len(tarot.HandfulSizes))]
	}
	if r.Intn(15) == 0 {
		in.Miseres = []string{m.Players[r.Intn(len(m.Players))]}
	}
	if r.Intn(60) == 0 {
		in.Bid = tarot.Slam
		in.AttackPoints = 91
		in.AttackTrumps = 3
		in.Slam = tarot.Some(tarot.SlamOutcome{Announced: true, Succeeded: r.Intn(3) > 0})
	}
	return in
}

func main() {
	log.Info("Starting history seeder...")
	cfg := config.Load()

	clock := quartz.NewReal()
	app, err := cli.Open(cfg, clock)
	if err != nil {
		log.Fatalf("Failed to open the document store: %s", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("Failed to close the document store", "error", err)
		}
	}()

	ctx := context.Background()
	roster := app.Players.List(ctx)
	if len(roster) < tarot.SeatCount {
		log.Fatalf("Need at least %d registered players, found %d", tarot.SeatCount, len(roster))
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	log.Info("Preparing to insert matches...", "matches", numMatches, "hands_per_match", handsPerMatch)
	startTime := time.Now()

	hands := 0
	for i := range numMatches {
		names := make([]string, 0, tarot.SeatCount)
		for _, idx := range r.Perm(len(roster))[:tarot.SeatCount] {
			names = append(names, roster[idx].Name)
		}
		m, err := app.History.CreateMatch(ctx, names)
		if err != nil {
			log.Fatalf("Failed to create match %d: %s", i, err)
		}
		for range handsPerMatch {
			if _, err := app.History.RecordHand(ctx, app.Engine, m.ID, randomHand(r, m)); err != nil {
				log.Warn("Skipped hand", "match", m.ID, "error", err)
				continue
			}
			hands++
		}
		log.Info("Inserted match", "match", i+1, "id", m.ID)
	}

	log.Info("Seeding complete.", "matches", numMatches, "hands", hands, "duration", time.Since(startTime))
}
