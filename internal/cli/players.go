package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tarota5/scores/internal/players"
)

func (c *cli) playersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Manage registered players",
	}

	var alpha bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List registered players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inUse := players.InHistory(c.app.History.Load(ctx))
			rows := [][]string{}
			for _, p := range players.Sorted(c.app.Players.List(ctx), alpha) {
				played := ""
				if inUse[p.Name] {
					played = "yes"
				}
				rows = append(rows, []string{p.ID, p.Name, played})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "PLAYED"}, rows)
			return nil
		},
	}
	list.Flags().BoolVar(&alpha, "alpha", false, "sort alphabetically")

	add := &cobra.Command{
		Use:   "add NAME...",
		Short: "Register new players",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				p, err := c.app.Players.Add(cmd.Context(), raw)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", p.Name, p.ID)
			}
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename PLAYER NEW_NAME",
		Short: "Rename a player, keeping its id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := c.app.Players.Find(ctx, args[0])
			if err != nil {
				return err
			}
			renamed, err := c.app.Players.Rename(ctx, p.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", p.Name, renamed.Name)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete PLAYER",
		Short: "Delete a player who never played",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := c.app.Players.Find(ctx, args[0])
			if err != nil {
				return err
			}
			if err := c.app.Players.Delete(ctx, p.ID, c.app.History.Load(ctx)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", p.Name)
			return nil
		},
	}

	cmd.AddCommand(list, add, rename, del)
	return cmd
}
