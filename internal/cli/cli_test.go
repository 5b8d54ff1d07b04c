package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarota5/scores/internal/config"
	"github.com/tarota5/scores/internal/history"
	"github.com/tarota5/scores/internal/players"
)

var matchIDPattern = regexp.MustCompile(`Match ([0-9a-f-]{36}):`)

type harness struct {
	t     *testing.T
	cfg   config.Config
	clock *quartz.Mock
}

func newHarness(t *testing.T, backend config.Backend) *harness {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 3, 2, 20, 30, 0, 0, time.UTC))
	return &harness{
		t:     t,
		clock: clock,
		cfg: config.Config{
			DataDir: t.TempDir(),
			Backend: backend,
			DBName:  "tarot.db",
		},
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(h.cfg, h.clock)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) newMatch() string {
	h.t.Helper()
	out := h.mustRun("match", "new", "Alexis", "camille", "MARTIN", "Florence", "Arthur")
	found := matchIDPattern.FindStringSubmatch(out)
	require.Len(h.t, found, 2, out)
	return found[1]
}

func TestPlayersList_SeedsRegistry(t *testing.T) {
	h := newHarness(t, config.BackendFile)

	out := h.mustRun("players", "list", "--alpha")
	for _, p := range players.Seed() {
		assert.Contains(t, out, p.Name)
	}
	assert.FileExists(t, filepath.Join(h.cfg.DataDir, "joueurs.json"))
}

func TestPlayers_AddRenameDelete(t *testing.T) {
	h := newHarness(t, config.BackendFile)

	out := h.mustRun("players", "add", "  zoé ")
	assert.Contains(t, out, "Added Zoé")

	_, err := h.run("players", "add", "ZOÉ")
	assert.ErrorIs(t, err, players.ErrDuplicateName)

	out = h.mustRun("players", "rename", "zoé", "Zélie")
	assert.Contains(t, out, "Renamed Zoé to Zélie")

	out = h.mustRun("players", "delete", "Zélie")
	assert.Contains(t, out, "Deleted Zélie")

	_, err = h.run("players", "delete", "Zélie")
	assert.ErrorIs(t, err, players.ErrNotFound)
}

func TestPlayersDelete_RefusesPlayerInHistory(t *testing.T) {
	h := newHarness(t, config.BackendFile)
	h.newMatch()

	_, err := h.run("players", "delete", "Alexis")
	assert.ErrorIs(t, err, players.ErrInUse)
}

func TestMatchNew_UnknownPlayer(t *testing.T) {
	h := newHarness(t, config.BackendFile)

	_, err := h.run("match", "new", "Alexis", "Camille", "Martin", "Florence", "Nobody")
	assert.ErrorIs(t, err, players.ErrNotFound)
}

func TestHandAdd(t *testing.T) {
	for _, backend := range []config.Backend{config.BackendFile, config.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			h := newHarness(t, backend)
			id := h.newMatch()

			h.clock.Advance(5 * time.Minute)
			out := h.mustRun("hand", "add", id[:8],
				"--taker", "alexis", "--bid", "garde",
				"--points", "82", "--bouts", "3",
				"--misere", "Martin", "--handful", "Martin=simple")
			assert.Contains(t, out, "Contract made by 46 points")
			assert.Contains(t, out, "+638")
			assert.Contains(t, out, "-122")

			out = h.mustRun("match", "show", id)
			assert.Contains(t, out, "TOTAL")
			assert.Contains(t, out, "+638")
			assert.Contains(t, out, "-172")

			out = h.mustRun("match", "list")
			assert.Contains(t, out, "1 hands")
		})
	}
}

func TestHandEditAndDelete(t *testing.T) {
	h := newHarness(t, config.BackendFile)
	id := h.newMatch()

	h.mustRun("hand", "add", id, "--taker", "Alexis", "--partner", "Camille",
		"--bid", "petite", "--points", "30", "--bouts", "1")

	out := h.mustRun("hand", "edit", id, "1", "--taker", "Alexis", "--partner", "Camille",
		"--bid", "petite", "--points", "60", "--bouts", "1")
	assert.Contains(t, out, "Contract made by 9 points")

	out = h.mustRun("match", "show", id)
	assert.Equal(t, 1, strings.Count(out, "Alexis + Camille"))

	h.mustRun("hand", "delete", id, "1")
	_, err := h.run("hand", "delete", id, "1")
	assert.ErrorIs(t, err, history.ErrHandNotFound)
}

func TestHandAdd_RejectsBadFlags(t *testing.T) {
	h := newHarness(t, config.BackendFile)
	id := h.newMatch()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown taker", []string{"--taker", "Yannick", "--bid", "garde"}},
		{"unknown bid", []string{"--taker", "Alexis", "--bid", "prise"}},
		{"points out of range", []string{"--taker", "Alexis", "--bid", "garde", "--points", "92"}},
		{"bad petit", []string{"--taker", "Alexis", "--bid", "garde", "--petit", "Alexis"}},
		{"bad slam", []string{"--taker", "Alexis", "--bid", "chelem", "--slam", "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(append([]string{"hand", "add", id}, tt.args...)...)
			assert.Error(t, err)
		})
	}

	out := h.mustRun("match", "show", id)
	assert.NotContains(t, out, "+", "no hand was recorded")
}

func TestMatchDelete(t *testing.T) {
	h := newHarness(t, config.BackendFile)
	id := h.newMatch()

	out := h.mustRun("match", "delete", id)
	assert.Contains(t, out, "Deleted match "+id)

	_, err := h.run("match", "show", id)
	assert.ErrorIs(t, err, history.ErrMatchNotFound)
}

func TestStats(t *testing.T) {
	h := newHarness(t, config.BackendFile)
	id := h.newMatch()
	h.mustRun("hand", "add", id, "--taker", "Alexis", "--bid", "garde",
		"--points", "82", "--bouts", "3", "--misere", "Martin", "--handful", "Martin=simple")

	out := h.mustRun("stats", "players", "--sort", "name")
	assert.Contains(t, out, "Alexis")
	assert.Contains(t, out, "+638")

	out = h.mustRun("stats", "matches")
	assert.Contains(t, out, id[:8])

	out = h.mustRun("stats", "global")
	assert.Contains(t, out, "Best hand score")
	assert.Contains(t, out, "638")

	_, err := h.run("stats", "players", "--sort", "height")
	assert.Error(t, err)
}

func TestAnalyze_Context(t *testing.T) {
	h := newHarness(t, config.BackendFile)
	id := h.newMatch()
	h.mustRun("hand", "add", id, "--taker", "Alexis", "--bid", "garde", "--points", "82", "--bouts", "3")

	app, err := Open(h.cfg, h.clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	c := &cli{cfg: h.cfg, clock: h.clock, app: app}

	t.Run("loads both documents", func(t *testing.T) {
		report, hist, list, err := c.analyze(context.Background())
		require.NoError(t, err)
		assert.Len(t, hist.Matches, 1)
		assert.NotEmpty(t, list)
		assert.Equal(t, 1, report.Global.Hands)
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, _, err := c.analyze(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMetrics(t *testing.T) {
	h := newHarness(t, config.BackendFile)
	h.cfg.MetricsFile = filepath.Join(t.TempDir(), "tarot.prom")
	id := h.newMatch()
	h.mustRun("hand", "add", id, "--taker", "Alexis", "--bid", "garde", "--points", "82", "--bouts", "3")

	data, err := os.ReadFile(h.cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tarot_hands_scored_total 1")
	assert.Contains(t, string(data), "tarot_matches_tracked 1")

	out := h.mustRun("metrics")
	assert.Contains(t, out, "hands_scored")
}

func TestMetrics_WrittenWhenCommandFails(t *testing.T) {
	for _, backend := range []config.Backend{config.BackendFile, config.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			h := newHarness(t, backend)
			h.cfg.MetricsFile = filepath.Join(t.TempDir(), "tarot.prom")

			_, err := h.run("hand", "add", "no-such-match", "--taker", "Alexis", "--bid", "garde", "--points", "82", "--bouts", "3")
			require.ErrorIs(t, err, history.ErrMatchNotFound)
			assert.FileExists(t, h.cfg.MetricsFile)

			// The store was released, so the next command can open it again.
			h.newMatch()
		})
	}
}

func TestConfigShow(t *testing.T) {
	h := newHarness(t, config.BackendFile)

	out := h.mustRun("config", "show")
	assert.Contains(t, out, "constantes: bundled")
	assert.Contains(t, out, `"seuils_bouts"`)
}

func TestOpen_RejectsUnknownBackend(t *testing.T) {
	h := newHarness(t, config.Backend("redis"))
	_, err := h.run("players", "list")
	assert.Error(t, err)
}
