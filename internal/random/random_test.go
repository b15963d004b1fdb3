package random

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSeeded_Reproducible(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for range 100 {
		require.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		in := rapid.SliceOf(rapid.Int()).Draw(rt, "in")

		out := slices.Clone(in)
		Shuffle(NewSeeded(seed), out)

		slices.Sort(in)
		slices.Sort(out)
		assert.Equal(rt, in, out)
	})
}

func TestCrypto_InRange(t *testing.T) {
	src := NewCrypto()
	for range 200 {
		v := src.IntN(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
}

func TestIntN_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { NewCrypto().IntN(0) })
	assert.Panics(t, func() { NewSeeded(1).IntN(-1) })
}
