package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarota5/scores/internal/tarot"
)

func hand(id string, scores ...int) tarot.Hand {
	return tarot.Hand{ID: id, Bid: tarot.Guard, Scores: scores}
}

func twoMatches() tarot.History {
	return tarot.History{Matches: []tarot.Match{
		{ID: "m1", Players: []string{"A", "B", "C", "D", "E"}, Hands: []tarot.Hand{
			hand("h1", 136, 68, -68, -68, -68),
			hand("h2", -144, -72, 72, 72, 72),
		}},
		{ID: "m2", Players: []string{"F", "G", "H", "I", "J"}, Hands: []tarot.Hand{
			hand("h3", 200, -50, -50, -50, -50),
		}},
	}}
}

func TestWithMatch(t *testing.T) {
	h := twoMatches()
	out := WithMatch(h, tarot.Match{ID: "m3"})

	require.Len(t, out.Matches, 3)
	assert.Equal(t, "m3", out.Matches[2].ID)
	assert.Len(t, h.Matches, 2)
}

func TestWithHand(t *testing.T) {
	h := twoMatches()

	out := WithHand(h, "m2", hand("h4"))
	require.Len(t, out.Matches[1].Hands, 2)
	assert.Equal(t, "h4", out.Matches[1].Hands[1].ID)
	assert.Len(t, h.Matches[1].Hands, 1, "input is not modified")

	unchanged := WithHand(h, "missing", hand("h4"))
	assert.Equal(t, h, unchanged)
}

func TestWithEditedHand(t *testing.T) {
	h := twoMatches()
	edited := hand("h1", 0, 0, 0, 0, 0)

	once := WithEditedHand(h, "m1", edited)
	assert.Equal(t, edited, once.Matches[0].Hands[0])
	assert.Equal(t, h.Matches[0].Hands[1], once.Matches[0].Hands[1])
	assert.Equal(t, []int{136, 68, -68, -68, -68}, h.Matches[0].Hands[0].Scores, "input is not modified")

	twice := WithEditedHand(once, "m1", edited)
	assert.Equal(t, once, twice)

	t.Run("hand of another match is not touched", func(t *testing.T) {
		out := WithEditedHand(h, "m2", edited)
		assert.Equal(t, h, out)
	})
}

func TestWithoutHand(t *testing.T) {
	h := twoMatches()

	out := WithoutHand(h, "m1", "h1")
	require.Len(t, out.Matches[0].Hands, 1)
	assert.Equal(t, "h2", out.Matches[0].Hands[0].ID)
	assert.Len(t, h.Matches[0].Hands, 2)

	out = WithoutHand(h, "m1", "h3")
	assert.Len(t, out.Matches[0].Hands, 2)
}

func TestWithoutMatch(t *testing.T) {
	h := twoMatches()

	out, removed := WithoutMatch(h, "m1")
	assert.True(t, removed)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "m2", out.Matches[0].ID)

	out, removed = WithoutMatch(h, "nope")
	assert.False(t, removed)
	assert.Equal(t, h, out)
}

func TestFind(t *testing.T) {
	h := twoMatches()

	m, ok := FindMatch(h, "m2")
	assert.True(t, ok)
	assert.Equal(t, "m2", m.ID)

	_, ok = FindMatch(h, "m9")
	assert.False(t, ok)

	hd, ok := FindHand(h, "m1", "h2")
	assert.True(t, ok)
	assert.Equal(t, "h2", hd.ID)

	_, ok = FindHand(h, "m2", "h2")
	assert.False(t, ok)
	_, ok = FindHand(h, "m9", "h2")
	assert.False(t, ok)
}
