// Package http serves a read-only view of the history, the statistics and
// the metrics.
package http

import (
	"net/http"

	"github.com/coder/quartz"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/metrics"
	"github.com/tarota5/scores/internal/players"
)

func NewServer(hist *history.Service, registry *players.Registry, metricsSvc metrics.Metrics, metricsHandler http.Handler, clock quartz.Clock) *Server {
	server := &Server{
		History:        hist,
		Players:        registry,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Clock:          clock,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	logged := requestLogger(s.Clock)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), logged))
	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), logged))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), logged))
	s.Router.Handle("GET /matches/{id}", Chain(s.MatchHandler(), logged))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), logged))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
