package http

import (
	"net/http"

	"github.com/coder/quartz"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/metrics"
	"github.com/tarota5/scores/internal/players"
)

type Server struct {
	History        *history.Service
	Players        *players.Registry
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Clock          quartz.Clock
	Router         *http.ServeMux
}

// matchSummary is one line of the match list.
type matchSummary struct {
	ID        string   `json:"id"`
	CreatedAt int64    `json:"createdAt"`
	Players   []string `json:"joueurs"`
	Hands     int      `json:"donnes"`
	Totals    []int    `json:"totaux"`
}

type playerEntry struct {
	ID     string `json:"id"`
	Name   string `json:"nom"`
	Played bool   `json:"aJoue"`
}
