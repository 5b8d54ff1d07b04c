package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/tarot"
)

var errAmbiguousID = errors.New("ambiguous id prefix")

// findMatch accepts a full match id or a unique prefix of one.
func (c *cli) findMatch(ctx context.Context, idOrPrefix string) (tarot.Match, error) {
	h := c.app.History.Load(ctx)
	if m, ok := history.FindMatch(h, idOrPrefix); ok {
		return m, nil
	}
	var found []tarot.Match
	for _, m := range h.Matches {
		if strings.HasPrefix(m.ID, idOrPrefix) {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return tarot.Match{}, fmt.Errorf("%w: %s", history.ErrMatchNotFound, idOrPrefix)
	case 1:
		return found[0], nil
	default:
		return tarot.Match{}, fmt.Errorf("%w: %s", errAmbiguousID, idOrPrefix)
	}
}

func (c *cli) matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "match",
		Aliases: []string{"partie"},
		Short:   "Create, browse and delete matches",
	}

	create := &cobra.Command{
		Use:   "new PLAYER PLAYER PLAYER PLAYER PLAYER",
		Short: "Start a match between five registered players",
		Args:  cobra.ExactArgs(tarot.SeatCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			names := make([]string, 0, len(args))
			for _, arg := range args {
				p, err := c.app.Players.Find(ctx, arg)
				if err != nil {
					return err
				}
				names = append(names, p.Name)
			}
			m, err := c.app.History.CreateMatch(ctx, names)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Match %s: %s\n", m.ID, strings.Join(m.Players, ", "))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List matches by day, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, y := range history.Calendar(c.app.History.Load(cmd.Context()), time.Local) {
				for _, mo := range y.Months {
					fmt.Fprintf(out, "%s %d\n", mo.Month, y.Year)
					for _, d := range mo.Days {
						for _, m := range d.Matches {
							fmt.Fprintf(out, "  %s  %s  %-40s %d hands\n",
								formatDate(m.CreatedAt), shortID(m.ID), strings.Join(m.Players, ", "), len(m.Hands))
						}
					}
				}
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show MATCH",
		Short: "Print the score sheet of a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.findMatch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSheet(cmd, m)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete MATCH",
		Short: "Delete a match and all its hands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := c.findMatch(ctx, args[0])
			if err != nil {
				return err
			}
			_, removed, err := c.app.History.DeleteMatch(ctx, m.ID)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%w: %s", history.ErrMatchNotFound, m.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted match %s (%d hands)\n", m.ID, len(m.Hands))
			return nil
		},
	}

	cmd.AddCommand(create, list, show, del)
	return cmd
}

func printSheet(cmd *cobra.Command, m tarot.Match) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Match %s, %s\n", m.ID, formatDate(m.CreatedAt))

	headers := append([]string{"#", "HAND", "TAKER", "BID"}, m.Players...)
	rows := [][]string{}
	for i, hand := range m.Hands {
		taker := "?"
		if hand.Taker >= 0 && hand.Taker < len(m.Players) {
			taker = m.Players[hand.Taker]
		}
		if !hand.Solo() && hand.Partner >= 0 && hand.Partner < len(m.Players) {
			taker += " + " + m.Players[hand.Partner]
		}
		row := []string{itoa(i + 1), shortID(hand.ID), taker, hand.BidToken()}
		for seat := range m.Players {
			score := ""
			if seat < len(hand.Scores) {
				score = signed(hand.Scores[seat])
			}
			row = append(row, score)
		}
		rows = append(rows, row)
	}
	total := []string{"", "", "TOTAL", ""}
	for _, v := range history.Totals(m) {
		total = append(total, signed(v))
	}
	rows = append(rows, total)
	renderTable(out, headers, rows)
}
