package gameid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqRand struct{ n int }

func (s *seqRand) IntBetween(min, max int) int {
	v := min + s.n%(max-min+1)
	s.n++
	return v
}

func TestGeneratedCodesValidate(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(nil)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code := gen.GameCode()
		require.Len(t, code, GameCodeLen)
		require.NoError(t, Validate(code))
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should be effectively unique")

	player := gen.PlayerCode()
	require.Len(t, player, PlayerCodeLen)
	require.NoError(t, Validate(player))
}

func TestGeneratorWithInjectedRand(t *testing.T) {
	t.Parallel()

	a := NewGenerator(&seqRand{}).GameCode()
	b := NewGenerator(&seqRand{}).GameCode()
	assert.Equal(t, a, b, "same source sequence gives same code")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate("abc123"))
	require.Error(t, Validate(""))
	require.Error(t, Validate("ABC!"))
	require.Error(t, Validate("has-dash"))
}
