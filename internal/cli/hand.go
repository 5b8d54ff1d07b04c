package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/tarot"
)

// handFlags are the declarations of a hand as typed on the command line.
type handFlags struct {
	taker    string
	partner  string
	bid      string
	points   int
	bouts    int
	petit    string
	handfuls []string
	trumps   []string
	miseres  []string
	slam     string
}

func (f *handFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.taker, "taker", "", "player who took the contract")
	fl.StringVar(&f.partner, "partner", "", "called partner (defaults to the taker, playing alone)")
	fl.StringVar(&f.bid, "bid", "", "petite, garde, garde_sans, garde_contre or chelem")
	fl.IntVar(&f.points, "points", 0, "card points of the attack (0-91)")
	fl.IntVar(&f.bouts, "bouts", 0, "bouts won by the attack (0-3)")
	fl.StringVar(&f.petit, "petit", "", "petit au bout as PLAYER:won or PLAYER:lost")
	fl.StringArrayVar(&f.handfuls, "handful", nil, "declared handful as PLAYER=simple|double|triple (repeatable)")
	fl.StringArrayVar(&f.trumps, "trumps", nil, "trump count shown as PLAYER=COUNT, classified into a handful (repeatable)")
	fl.StringSliceVar(&f.miseres, "misere", nil, "players declaring a misère")
	fl.StringVar(&f.slam, "slam", "", "slam outcome: announced-won, announced-lost, won or lost")
	_ = cmd.MarkFlagRequired("taker")
	_ = cmd.MarkFlagRequired("bid")
}

// seat resolves raw to the name seated in m, ignoring case.
func seat(m tarot.Match, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, p := range m.Players {
		if strings.EqualFold(p, raw) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s does not play in match %s", raw, shortID(m.ID))
}

func parseBid(raw string) (tarot.Bid, error) {
	if b, err := tarot.ParseBid(raw); err == nil {
		return b, nil
	}
	return tarot.ParseBid(strings.ToUpper(strings.ReplaceAll(raw, "-", "_")))
}

func (c *cli) handInput(m tarot.Match, f *handFlags) (history.HandInput, error) {
	var in history.HandInput
	var err error

	if in.Taker, err = seat(m, f.taker); err != nil {
		return in, err
	}
	in.Partner = in.Taker
	if f.partner != "" {
		if in.Partner, err = seat(m, f.partner); err != nil {
			return in, err
		}
	}
	if in.Bid, err = parseBid(f.bid); err != nil {
		return in, err
	}
	if f.points < 0 || f.points > 91 {
		return in, fmt.Errorf("points must be between 0 and 91, got %d", f.points)
	}
	if f.bouts < 0 || f.bouts > 3 {
		return in, fmt.Errorf("bouts must be between 0 and 3, got %d", f.bouts)
	}
	in.AttackPoints = f.points
	in.AttackTrumps = f.bouts

	if f.petit != "" {
		name, result, ok := strings.Cut(f.petit, ":")
		if !ok {
			return in, fmt.Errorf("petit au bout must be PLAYER:won or PLAYER:lost, got %q", f.petit)
		}
		holder, err := seat(m, name)
		if err != nil {
			return in, err
		}
		var won bool
		switch strings.ToLower(result) {
		case "won", "gagne":
			won = true
		case "lost", "perdu":
		default:
			return in, fmt.Errorf("petit au bout result must be won or lost, got %q", result)
		}
		in.LastTrick = tarot.Some(tarot.LastTrickBonus{Holder: tarot.IndexOf(m.Players, holder), Won: won})
	}

	in.Handfuls = make(map[string]tarot.HandfulSize)
	for _, raw := range f.trumps {
		name, count, ok := strings.Cut(raw, "=")
		if !ok {
			return in, fmt.Errorf("trumps must be PLAYER=COUNT, got %q", raw)
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return in, fmt.Errorf("trumps count %q: %w", count, err)
		}
		player, err := seat(m, name)
		if err != nil {
			return in, err
		}
		if size := c.app.Engine.Constants().HandfulFor(n); size != tarot.NoHandful {
			in.Handfuls[player] = size
		}
	}
	for _, raw := range f.handfuls {
		name, size, ok := strings.Cut(raw, "=")
		if !ok {
			return in, fmt.Errorf("handful must be PLAYER=SIZE, got %q", raw)
		}
		player, err := seat(m, name)
		if err != nil {
			return in, err
		}
		parsed, err := tarot.ParseHandfulSize(strings.ToUpper(size))
		if err != nil {
			return in, err
		}
		in.Handfuls[player] = parsed
	}

	for _, raw := range f.miseres {
		player, err := seat(m, raw)
		if err != nil {
			return in, err
		}
		in.Miseres = append(in.Miseres, player)
	}

	switch strings.ToLower(f.slam) {
	case "":
	case "announced-won":
		in.Slam = tarot.Some(tarot.SlamOutcome{Announced: true, Succeeded: true})
	case "announced-lost":
		in.Slam = tarot.Some(tarot.SlamOutcome{Announced: true, Succeeded: false})
	case "won":
		in.Slam = tarot.Some(tarot.SlamOutcome{Announced: false, Succeeded: true})
	case "lost":
		in.Slam = tarot.Some(tarot.SlamOutcome{Announced: false, Succeeded: false})
	default:
		return in, fmt.Errorf("unknown slam outcome %q", f.slam)
	}
	return in, nil
}

func (c *cli) handCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hand",
		Aliases: []string{"donne"},
		Short:   "Score, correct and remove hands",
	}

	var addFlags handFlags
	add := &cobra.Command{
		Use:   "add MATCH",
		Short: "Score a hand and add it to a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.recordHand(cmd, args[0], "", &addFlags)
		},
	}
	addFlags.register(add)

	var editFlags handFlags
	edit := &cobra.Command{
		Use:   "edit MATCH HAND",
		Short: "Score a hand again, replacing a previous one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.recordHand(cmd, args[0], args[1], &editFlags)
		},
	}
	editFlags.register(edit)

	del := &cobra.Command{
		Use:   "delete MATCH HAND",
		Short: "Remove a hand from a match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := c.findMatch(ctx, args[0])
			if err != nil {
				return err
			}
			hand, err := findHand(m, args[1])
			if err != nil {
				return err
			}
			if _, err := c.app.History.DeleteHand(ctx, m.ID, hand.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted hand %s\n", hand.ID)
			return nil
		},
	}

	cmd.AddCommand(add, edit, del)
	return cmd
}

// findHand accepts a full hand id, a unique prefix or a 1-based position.
func findHand(m tarot.Match, ref string) (tarot.Hand, error) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(m.Hands) {
		return m.Hands[n-1], nil
	}
	var found []tarot.Hand
	for _, hand := range m.Hands {
		if hand.ID == ref {
			return hand, nil
		}
		if strings.HasPrefix(hand.ID, ref) {
			found = append(found, hand)
		}
	}
	switch len(found) {
	case 0:
		return tarot.Hand{}, fmt.Errorf("%w: %s", history.ErrHandNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return tarot.Hand{}, fmt.Errorf("%w: %s", errAmbiguousID, ref)
	}
}

func (c *cli) recordHand(cmd *cobra.Command, matchRef, handRef string, f *handFlags) error {
	ctx := cmd.Context()
	m, err := c.findMatch(ctx, matchRef)
	if err != nil {
		return err
	}
	in, err := c.handInput(m, f)
	if err != nil {
		return err
	}
	if handRef != "" {
		prev, err := findHand(m, handRef)
		if err != nil {
			return err
		}
		in.ReplaceID = prev.ID
	}

	hand, err := c.app.History.RecordHand(ctx, c.app.Engine, m.ID, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if in.Bid != tarot.Slam {
		margin := c.app.Engine.Margin(in.AttackPoints, in.AttackTrumps)
		if margin >= 0 {
			fmt.Fprintf(out, "Contract made by %d points\n", margin)
		} else {
			fmt.Fprintf(out, "Contract failed by %d points\n", -margin)
		}
	}
	rows := [][]string{}
	for i, p := range m.Players {
		rows = append(rows, []string{p, signed(hand.Scores[i])})
	}
	renderTable(out, []string{"PLAYER", "SCORE"}, rows)
	fmt.Fprintf(out, "Hand %s\n", hand.ID)
	return nil
}
