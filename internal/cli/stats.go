package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tarota5/scores/internal/stats"
	"github.com/tarota5/scores/internal/tarot"
	"golang.org/x/sync/errgroup"
)

// analyze loads the history and the player list concurrently and analyses the
// history. Both loads degrade to empty documents, so the group only fails when
// ctx is cancelled.
func (c *cli) analyze(ctx context.Context) (stats.Report, tarot.History, []tarot.Player, error) {
	var (
		h    tarot.History
		list []tarot.Player
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h = c.app.History.Load(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		list = c.app.Players.List(gctx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return stats.Report{}, h, list, err
	}

	start := c.app.Clock.Now()
	report := stats.Analyze(h)
	elapsed := c.app.Clock.Since(start)
	c.app.Metrics.ObserveAnalysisDuration(elapsed.Seconds())
	log.Debug("Analyzed history", "matches", len(h.Matches), "players", len(report.Players), "duration", elapsed)
	return report, h, list, nil
}

func (c *cli) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Statistics over the whole history",
	}

	var sortBy string
	playersCmd := &cobra.Command{
		Use:   "players",
		Short: "Per-player statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, _, list, err := c.analyze(cmd.Context())
			if err != nil {
				return err
			}
			names := make([]string, 0, len(report.Players))
			for name := range report.Players {
				names = append(names, name)
			}
			switch sortBy {
			case "net":
				slices.SortFunc(names, func(a, b string) int {
					return cmp.Compare(report.Players[b].NetGain, report.Players[a].NetGain)
				})
			case "hand":
				slices.SortFunc(names, func(a, b string) int {
					return cmp.Compare(report.Players[b].GainPerHand, report.Players[a].GainPerHand)
				})
			case "name":
				slices.Sort(names)
			default:
				return fmt.Errorf("unknown sort %q (want net, hand or name)", sortBy)
			}

			rows := [][]string{}
			for _, name := range names {
				p := report.Players[name]
				rows = append(rows, []string{
					name, itoa(p.TotalMatches), itoa(p.TotalHands),
					itoa(p.Taker), itoa(p.Partner), itoa(p.Defense),
					signed(p.NetGain), ftoa(p.GainPerHand),
					itoa(p.BestScore), itoa(p.WorstScore),
					itoa(p.Decile), itoa(p.DecilePerHand),
				})
			}
			for _, p := range list {
				if _, ok := report.Players[p.Name]; !ok {
					rows = append(rows, []string{p.Name, "0", "0", "", "", "", "", "", "", "", "", ""})
				}
			}
			renderTable(cmd.OutOrStdout(), []string{
				"PLAYER", "MATCHES", "HANDS", "TAKER", "PARTNER", "DEFENSE",
				"NET", "PER HAND", "BEST", "WORST", "DECILE", "DECILE/HAND",
			}, rows)
			return nil
		},
	}
	playersCmd.Flags().StringVar(&sortBy, "sort", "net", "order by net, hand or name")

	matchesCmd := &cobra.Command{
		Use:   "matches",
		Short: "Per-match statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, h, _, err := c.analyze(cmd.Context())
			if err != nil {
				return err
			}
			rows := [][]string{}
			for i, m := range report.Matches {
				rows = append(rows, []string{
					shortID(m.MatchID), formatDate(h.Matches[i].CreatedAt), itoa(m.Hands),
					itoa(m.PointsGained), itoa(m.BestScore), itoa(m.WorstScore),
					itoa(m.AttackTrumps), counts(m.Bids[:]), counts(m.Handfuls[:]), counts(m.Slams[:]),
					fmt.Sprintf("%d/%d", m.LastTrickWon, m.LastTrickLost), itoa(m.Miseres),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{
				"MATCH", "DATE", "HANDS", "GAINED", "BEST", "WORST",
				"BOUTS", "BIDS", "HANDFULS", "SLAMS", "PETIT", "MISERES",
			}, rows)
			return nil
		},
	}

	globalCmd := &cobra.Command{
		Use:   "global",
		Short: "Statistics over every match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, _, _, err := c.analyze(cmd.Context())
			if err != nil {
				return err
			}
			g := report.Global
			renderTable(cmd.OutOrStdout(), []string{"", ""}, [][]string{
				{"Hands", itoa(g.Hands)},
				{"Bouts won by the attack", itoa(g.AttackTrumps)},
				{"Points gained", itoa(g.PointsGained)},
				{"Best hand score", itoa(g.BestScore)},
				{"Worst hand score", itoa(g.WorstScore)},
				{"Bids (petite/garde/sans/contre)", counts(g.Bids[:])},
				{"Handfuls (simple/double/triple)", counts(g.Handfuls[:])},
				{"Slams (won/announced lost/announced won)", counts(g.Slams[:])},
				{"Petit au bout won/lost", fmt.Sprintf("%d/%d", g.LastTrickWon, g.LastTrickLost)},
				{"Misères", itoa(g.Miseres)},
				{"Net gain min/median/max", fmt.Sprintf("%d / %d / %d", g.MinGain, g.MedianGain, g.MaxGain)},
				{"Per hand min/median/max", fmt.Sprintf("%s / %s / %s", ftoa(g.MinGainPerHand), ftoa(g.MedianGainPerHand), ftoa(g.MaxGainPerHand))},
			})
			return nil
		},
	}

	cmd.AddCommand(playersCmd, matchesCmd, globalCmd)
	return cmd
}

func counts(values []int) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += "/"
		}
		s += itoa(v)
	}
	return s
}
