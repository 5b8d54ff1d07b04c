// Package cli is the command-line front end of the score keeper.
package cli

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/spf13/cobra"
	"github.com/tarota5/scores/internal/config"
)

type cli struct {
	cfg   config.Config
	clock quartz.Clock
	app   *App
}

// Command is the root command. Its Execute closes the application opened by
// the command that ran, including when that command fails.
type Command struct {
	*cobra.Command
	c *cli
}

// Execute runs the command tree then closes the application. Cobra skips
// PersistentPostRunE when RunE fails, so closing is not left to a hook.
func (r *Command) Execute() (err error) {
	defer func() {
		if cerr := r.c.close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return r.Command.Execute()
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	app := c.app
	c.app = nil
	return app.Close()
}

// NewRootCmd builds the command tree. cfg provides the flag defaults.
func NewRootCmd(cfg config.Config, clock quartz.Clock) *Command {
	c := &cli{cfg: cfg, clock: clock}

	root := &cobra.Command{
		Use:   "tarot",
		Short: "Score keeper for five-player Tarot",
		Long: `Keeps the scores of five-player Tarot evenings: players, matches,
hands and the statistics derived from the whole history.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Debug {
				log.SetLevel(log.DebugLevel)
			}
			app, err := Open(c.cfg, c.clock)
			if err != nil {
				return err
			}
			c.app = app
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the documents")
	flags.StringVar((*string)(&c.cfg.Backend), "backend", string(cfg.Backend), "document store: file, sqlite or turso")
	flags.StringVar(&c.cfg.Constantes, "constantes", cfg.Constantes, "scoring constants file (bundled constants when empty)")
	flags.StringVar(&c.cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write prometheus metrics to this file on exit")
	flags.BoolVar(&c.cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	root.AddCommand(
		c.playersCmd(),
		c.matchCmd(),
		c.handCmd(),
		c.statsCmd(),
		c.configCmd(),
		c.metricsCmd(),
		c.serveCmd(),
	)
	return &Command{Command: root, c: c}
}
