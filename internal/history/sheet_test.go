package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarota5/scores/internal/tarot"
)

func TestTotals(t *testing.T) {
	m := twoMatches().Matches[0]
	assert.Equal(t, []int{-8, -4, 4, 4, 4}, Totals(m))

	m.Hands = append(m.Hands, tarot.Hand{Scores: []int{1, 1, 1, 1, 1, 99}})
	assert.Equal(t, []int{-7, -3, 5, 5, 5}, Totals(m))

	assert.Equal(t, []int{0, 0, 0, 0, 0}, Totals(tarot.Match{Players: []string{"A", "B", "C", "D", "E"}}))
}

func TestCalendar(t *testing.T) {
	at := func(y int, mo time.Month, d, hh int) int64 {
		return time.Date(y, mo, d, hh, 0, 0, 0, time.UTC).UnixMilli()
	}
	h := tarot.History{Matches: []tarot.Match{
		{ID: "old", CreatedAt: time.Date(2023, time.December, 31, 23, 30, 0, 0, time.UTC).UnixMilli()},
		{ID: "a", CreatedAt: at(2024, time.March, 2, 20)},
		{ID: "b", CreatedAt: at(2024, time.March, 2, 21)},
		{ID: "c", CreatedAt: at(2024, time.March, 9, 20)},
		{ID: "d", CreatedAt: at(2024, time.January, 5, 20)},
	}}

	years := Calendar(h, time.UTC)
	require.Len(t, years, 2)
	assert.Equal(t, 2024, years[0].Year)
	assert.Equal(t, 2023, years[1].Year)

	require.Len(t, years[0].Months, 2)
	march := years[0].Months[0]
	assert.Equal(t, time.March, march.Month)
	require.Len(t, march.Days, 2)
	assert.Equal(t, 9, march.Days[0].Day)
	assert.Equal(t, 2, march.Days[1].Day)
	require.Len(t, march.Days[1].Matches, 2)
	assert.Equal(t, "b", march.Days[1].Matches[0].ID)
	assert.Equal(t, "a", march.Days[1].Matches[1].ID)
	assert.Equal(t, time.January, years[0].Months[1].Month)

	t.Run("local time decides the day", func(t *testing.T) {
		paris := time.FixedZone("CET", 3600)
		years := Calendar(tarot.History{Matches: h.Matches[:1]}, paris)
		// 23:30 UTC on Dec 31 is 00:30 on Jan 1 in Paris.
		require.Len(t, years, 1)
		assert.Equal(t, 2024, years[0].Year)
		assert.Equal(t, time.January, years[0].Months[0].Month)
		assert.Equal(t, 1, years[0].Months[0].Days[0].Day)
	})

	assert.Empty(t, Calendar(tarot.History{}, time.UTC))
}
