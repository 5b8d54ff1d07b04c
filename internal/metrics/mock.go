package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	handsScored         int
	scoringRejected     int
	persistenceFailures map[string]int
	analysisDurations   []float64
	matchesTracked      int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		persistenceFailures: make(map[string]int),
		analysisDurations:   make([]float64, 0),
	}
}

func (m *Mock) IncHandsScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handsScored++
}

func (m *Mock) IncScoringRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoringRejected++
}

func (m *Mock) IncPersistenceFailure(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistenceFailures[op]++
}

func (m *Mock) ObserveAnalysisDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analysisDurations = append(m.analysisDurations, seconds)
}

func (m *Mock) SetMatchesTracked(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesTracked = n
}

// HandsScored returns the number of times IncHandsScored was called.
func (m *Mock) HandsScored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handsScored
}

// ScoringRejected returns the number of times IncScoringRejected was called.
func (m *Mock) ScoringRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoringRejected
}

// PersistenceFailures returns the number of failures recorded for op.
func (m *Mock) PersistenceFailures(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistenceFailures[op]
}

// AnalysisRuns returns the number of observed analysis durations.
func (m *Mock) AnalysisRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.analysisDurations)
}

// MatchesTracked returns the last value passed to SetMatchesTracked.
func (m *Mock) MatchesTracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesTracked
}
