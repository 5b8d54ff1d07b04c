package metrics

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics. Increments are
// mirrored into counters when it is non-nil.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(counters CounterStore, registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		HandsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tarot_hands_scored_total",
			Help: "The total number of hands scored and recorded.",
		}),
		ScoringRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tarot_scoring_rejected_total",
			Help: "The total number of hands rejected by the scoring engine.",
		}),
		PersistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tarot_persistence_failures_total",
			Help: "The total number of documents that could not be loaded or saved.",
		}, []string{"op"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tarot_analysis_duration_seconds",
			Help:    "The duration of a full statistics analysis.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		MatchesTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tarot_matches_tracked",
			Help: "The number of matches in the history.",
		}),
		counters: counters,
	}

	reg.MustRegister(
		s.HandsScored,
		s.ScoringRejected,
		s.PersistenceFailures,
		s.AnalysisDuration,
		s.MatchesTracked,
	)

	return s
}

func (s *Service) IncHandsScored() {
	s.HandsScored.Inc()
	s.persist(KeyHandsScored)
}

func (s *Service) IncScoringRejected() {
	s.ScoringRejected.Inc()
	s.persist(KeyScoringRejected)
}

func (s *Service) IncPersistenceFailure(op string) {
	s.PersistenceFailures.WithLabelValues(op).Inc()
	s.persist(keyPersistenceFailure + op)
}

func (s *Service) ObserveAnalysisDuration(seconds float64) {
	s.AnalysisDuration.Observe(seconds)
}

func (s *Service) SetMatchesTracked(n int) {
	s.MatchesTracked.Set(float64(n))
}

func (s *Service) persist(key string) {
	if s.counters == nil {
		return
	}
	s.counters.Increment(key)
}

// WriteTextfile writes the gathered metrics in the text exposition format,
// for a node exporter textfile collector to pick up.
// If no gatherer is provided, it uses the default one.
func WriteTextfile(path string, gatherer ...prometheus.Gatherer) error {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	if err := prometheus.WriteToTextfile(path, gath); err != nil {
		return err
	}
	log.Debug("Wrote metrics textfile", "path", path)
	return nil
}
