package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyCountsWilds(t *testing.T) {
	t.Parallel()

	hand := Hand{5, 3, 3, 4, 3, 5, 1, 2}
	tally := hand.Tally()

	assert.Equal(t, 1, tally[1], "raw wild count")
	assert.Equal(t, 2, tally[2])
	assert.Equal(t, 4, tally[3], "three 3s plus one wild")
	assert.Equal(t, 2, tally[4])
	assert.Equal(t, 3, tally[5], "two 5s plus one wild")
	assert.Equal(t, 1, tally[6], "no 6s, just the wild")
}

func TestCountMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hand Hand
		face Face
		want int
	}{
		{"face plus wilds", Hand{3, 3, 1, 5}, 3, 3},
		{"wild face counts only wilds", Hand{1, 1, 3, 5}, 1, 2},
		{"no matches", Hand{2, 4, 6}, 3, 0},
		{"all wilds", Hand{1, 1, 1}, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hand.CountMatching(tt.face))
		})
	}
}

func TestHandValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Hand{1, 2, 3, 4, 5, 6}.Validate())
	require.Error(t, Hand{0}.Validate())
	require.Error(t, Hand{7}.Validate())
}

type fixedRand struct {
	values []int
	pos    int
}

func (f *fixedRand) IntBetween(min, max int) int {
	v := f.values[f.pos%len(f.values)]
	f.pos++
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

func TestRollerUsesSource(t *testing.T) {
	t.Parallel()

	roller := NewRoller(&fixedRand{values: []int{6, 1, 3, 3, 2}})
	hand := roller.Roll(5)

	require.Equal(t, Hand{6, 1, 3, 3, 2}, hand)
	require.NoError(t, hand.Validate())
}
