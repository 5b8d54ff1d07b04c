package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncHandsScored()
	IncScoringRejected()
	IncPersistenceFailure(op string)
	ObserveAnalysisDuration(seconds float64)
	SetMatchesTracked(n int)
}

// CounterStore keeps lifetime counters across runs of the CLI.
type CounterStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
