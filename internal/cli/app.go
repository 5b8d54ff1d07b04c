package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tarota5/scores/internal/config"
	"github.com/tarota5/scores/internal/database"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/metrics"
	"github.com/tarota5/scores/internal/players"
	"github.com/tarota5/scores/internal/scoring"
	"github.com/tarota5/scores/internal/store"
)

// App is the set of services a command runs against.
type App struct {
	Config   config.Config
	Clock    quartz.Clock
	Engine   *scoring.Engine
	History  *history.Service
	Players  *players.Registry
	Metrics  metrics.Metrics
	Counters metrics.CounterStore
	Registry *prometheus.Registry

	teardown func()
}

// Open builds the services for cfg.
func Open(cfg config.Config, clock quartz.Clock) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Clock: clock, teardown: func() {}}

	var docs store.DocumentStore
	switch cfg.Backend {
	case config.BackendFile:
		docs = store.NewFileStore(cfg.DataDir, store.DefaultJSONOptions())
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		db, teardown, err := database.InitDB(cfg.DBPath(), "", "")
		if err != nil {
			return nil, err
		}
		app.teardown = teardown
		docs = store.NewSQLStore(db, clock)
	case config.BackendTurso:
		db, teardown, err := database.InitDB("", cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return nil, err
		}
		app.teardown = teardown
		docs = store.NewSQLStore(db, clock)
	}
	log.Debug("Opened document store", "backend", cfg.Backend, "dir", cfg.DataDir)

	app.Registry = prometheus.NewRegistry()
	app.Counters = metrics.New(docs)
	app.Metrics = metrics.NewService(app.Counters, app.Registry)
	app.Engine = scoring.NewEngine(scoring.Load(cfg.Constantes))
	app.History = history.NewService(docs, clock, app.Metrics)
	app.Players = players.NewRegistry(docs, app.Metrics)
	return app, nil
}

// Close writes the metrics textfile when configured and releases the store.
func (a *App) Close() error {
	defer a.teardown()
	if a.Config.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.Config.MetricsFile, a.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
