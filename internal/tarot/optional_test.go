package tarot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestOptional_JSON(t *testing.T) {
	t.Run("absent is null", func(t *testing.T) {
		data, err := json.Marshal(None[SlamOutcome]())
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))

		var o Optional[SlamOutcome]
		require.NoError(t, json.Unmarshal([]byte(" null "), &o))
		assert.False(t, o.Present())
	})

	t.Run("present value", func(t *testing.T) {
		data, err := json.Marshal(Some(SlamOutcome{Announced: true}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"annonce":true,"succes":false}`, string(data))

		var o Optional[SlamOutcome]
		require.NoError(t, json.Unmarshal(data, &o))
		v, ok := o.Get()
		assert.True(t, ok)
		assert.Equal(t, SlamOutcome{Announced: true}, v)
	})

	t.Run("missing field stays absent", func(t *testing.T) {
		var h struct {
			Slam Optional[SlamOutcome] `json:"chelem"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{}`), &h))
		assert.False(t, h.Slam.Present())
	})
}

func TestOptional_Msgpack(t *testing.T) {
	type doc struct {
		Bonus Optional[LastTrickBonus]
		Other Optional[LastTrickBonus]
	}
	in := doc{Bonus: Some(LastTrickBonus{Holder: 3, Won: true})}

	data, err := msgpack.Marshal(in)
	require.NoError(t, err)

	var out doc
	require.NoError(t, msgpack.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
