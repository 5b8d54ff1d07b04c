package metrics

import "github.com/prometheus/client_golang/prometheus"

// Counter keys persisted by the CounterStore.
const (
	KeyHandsScored        = "hands_scored"
	KeyScoringRejected    = "scoring_rejected"
	keyPersistenceFailure = "persistence_failures_"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	HandsScored         prometheus.Counter
	ScoringRejected     prometheus.Counter
	PersistenceFailures *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	MatchesTracked      prometheus.Gauge

	counters CounterStore
}
