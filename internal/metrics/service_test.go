package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarota5/scores/internal/store"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	counters := New(store.NewMock())
	s := NewService(counters, reg)

	s.IncHandsScored()
	s.IncHandsScored()
	s.IncScoringRejected()
	s.IncPersistenceFailure("save")
	s.ObserveAnalysisDuration(0.002)
	s.SetMatchesTracked(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.HandsScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ScoringRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.PersistenceFailures.WithLabelValues("save")))
	assert.Equal(t, 7.0, testutil.ToFloat64(s.MatchesTracked))
	assert.Equal(t, 1, testutil.CollectAndCount(s.AnalysisDuration))

	persisted, err := counters.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyHandsScored:              2,
		KeyScoringRejected:          1,
		"persistence_failures_save": 1,
	}, persisted)
}

func TestService_WithoutCounterStore(t *testing.T) {
	s := NewService(nil, prometheus.NewRegistry())
	assert.NotPanics(t, s.IncHandsScored)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(nil, reg)
	s.SetMatchesTracked(3)

	path := filepath.Join(t.TempDir(), "tarot.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "tarot_matches_tracked 3"))
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.IncHandsScored()
	m.IncPersistenceFailure("load")
	m.ObserveAnalysisDuration(1)
	m.SetMatchesTracked(2)

	assert.Equal(t, 1, m.HandsScored())
	assert.Equal(t, 0, m.ScoringRejected())
	assert.Equal(t, 1, m.PersistenceFailures("load"))
	assert.Equal(t, 1, m.AnalysisRuns())
	assert.Equal(t, 2, m.MatchesTracked())
}
