package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	server "github.com/tarota5/scores/internal/http"
	"github.com/tarota5/scores/internal/metrics"
)

const shutdownGrace = 30 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only view of the history, statistics and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewServer(
				c.app.History,
				c.app.Players,
				c.app.Metrics,
				metrics.NewMetricsHandler(c.app.Registry),
				c.app.Clock,
			)
			srv := &http.Server{Addr: ":" + c.cfg.Port, Handler: handler}

			listenErr := make(chan error, 1)
			go func() {
				log.Info("Listening", "port", c.cfg.Port)
				listenErr <- srv.ListenAndServe()
			}()

			select {
			case err := <-listenErr:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("Stopping server", "grace", shutdownGrace)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Info("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&c.cfg.Port, "port", c.cfg.Port, "port to listen on")
	return cmd
}
