package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/players"
	"github.com/tarota5/scores/internal/stats"
	"github.com/tarota5/scores/internal/tarot"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ListPlayersHandler lists the registry, alphabetically with ?alpha=true.
func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		inUse := players.InHistory(s.History.Load(ctx))
		alpha := r.URL.Query().Get("alpha") == "true"

		entries := []playerEntry{}
		for _, p := range players.Sorted(s.Players.List(ctx), alpha) {
			entries = append(entries, playerEntry{ID: p.ID, Name: p.Name, Played: inUse[p.Name]})
		}
		log.Debug("Listing players", "count", len(entries))
		writeJSON(w, entries)
	}
}

// ListMatchesHandler lists matches newest first, optionally for one ?year=.
func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := 0
		if raw := r.URL.Query().Get("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				log.Warn("Invalid 'year' parameter", "year_param", raw)
				http.Error(w, "Invalid year", http.StatusBadRequest)
				return
			}
			year = parsed
		}

		summaries := []matchSummary{}
		for _, y := range history.Calendar(s.History.Load(r.Context()), time.UTC) {
			if year != 0 && y.Year != year {
				continue
			}
			for _, mo := range y.Months {
				for _, d := range mo.Days {
					for _, m := range d.Matches {
						summaries = append(summaries, matchSummary{
							ID:        m.ID,
							CreatedAt: m.CreatedAt,
							Players:   m.Players,
							Hands:     len(m.Hands),
							Totals:    history.Totals(m),
						})
					}
				}
			}
		}
		writeJSON(w, summaries)
	}
}

func (s *Server) MatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		m, ok := s.History.FindMatch(r.Context(), id)
		if !ok {
			log.Debug("Match not found", "matchID", id)
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		writeJSON(w, struct {
			Match  tarot.Match `json:"partie"`
			Totals []int       `json:"totaux"`
		}{m, history.Totals(m)})
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := s.History.Load(r.Context())

		start := s.Clock.Now()
		report := stats.Analyze(h)
		elapsed := s.Clock.Since(start)
		s.Metrics.ObserveAnalysisDuration(elapsed.Seconds())
		log.Info("Analyzed history", "matches", len(h.Matches), "duration", elapsed)

		writeJSON(w, report)
	}
}
