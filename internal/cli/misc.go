package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the settings and the scoring constants in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := c.app.Config
			fmt.Fprintf(out, "data dir:   %s\n", cfg.DataDir)
			fmt.Fprintf(out, "backend:    %s\n", cfg.Backend)
			if cfg.Constantes != "" {
				fmt.Fprintf(out, "constantes: %s\n", cfg.Constantes)
			} else {
				fmt.Fprintln(out, "constantes: bundled")
			}
			data, err := json.MarshalIndent(c.app.Engine.Constants(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
	cmd.AddCommand(show)
	return cmd
}

func (c *cli) metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print the lifetime counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counters, err := c.app.Counters.GetAll()
			if err != nil {
				return err
			}
			rows := [][]string{}
			for _, key := range slices.Sorted(maps.Keys(counters)) {
				rows = append(rows, []string{key, itoa(counters[key])})
			}
			renderTable(cmd.OutOrStdout(), []string{"COUNTER", "VALUE"}, rows)
			return nil
		},
	}
}
