package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCGDeterministicForSeed(t *testing.T) {
	t.Parallel()

	a := NewPCG(42)
	b := NewPCG(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.IntBetween(1, 6), b.IntBetween(1, 6))
	}
}

func TestPCGBounds(t *testing.T) {
	t.Parallel()

	rng := NewPCG(7)
	for i := 0; i < 1000; i++ {
		v := rng.IntBetween(1, 6)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 6)
	}

	// Degenerate range collapses to the single value.
	require.Equal(t, 3, rng.IntBetween(3, 3))
}

func TestScriptedReplays(t *testing.T) {
	t.Parallel()

	s := &Scripted{Ints: []int{5, 2, 99}, Bools: []bool{true, false}}

	assert.Equal(t, 5, s.IntBetween(1, 6))
	assert.Equal(t, 2, s.IntBetween(1, 6))
	assert.Equal(t, 6, s.IntBetween(1, 6), "out-of-range values clamp")
	assert.Equal(t, 1, s.IntBetween(1, 6), "exhausted script returns min")

	assert.True(t, s.Chance(0.5))
	assert.False(t, s.Chance(0.5))
	assert.False(t, s.Chance(0.99), "exhausted script returns false")
}
