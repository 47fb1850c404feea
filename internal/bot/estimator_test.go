package bot

import (
	"testing"

	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateOpeningCandidates(t *testing.T) {
	t.Parallel()

	// One wild, so every face gets credit for it on top of exact matches.
	hand := dice.Hand{3, 3, 1}
	cands := Estimate(hand, 12, nil)
	require.Len(t, cands, dice.NumFaces)

	wantQty := []int{1, 1, 3, 1, 1, 1}
	for i, c := range cands {
		assert.Equal(t, dice.Face(i+1), c.Bid.Face, "candidates are in face order")
		assert.Equal(t, wantQty[i], c.Bid.Quantity)
		// Opening quantities never exceed the hand size, so every opening
		// candidate scores zero.
		assert.Zero(t, c.Odds)
	}
}

func TestEstimateRaiseCandidates(t *testing.T) {
	t.Parallel()

	hand := dice.Hand{3, 3, 1}
	current := &game.Bid{Face: 4, Quantity: 4}
	cands := Estimate(hand, 12, current)
	require.Len(t, cands, dice.NumFaces)

	// Faces above the standing face raise at the same quantity, the rest
	// bump it by one.
	wantQty := []int{5, 5, 5, 5, 4, 4}
	wantOdds := []float64{2.5, 4, 6, 4, 4, 4}
	for i, c := range cands {
		assert.Equal(t, wantQty[i], c.Bid.Quantity, "face %d", i+1)
		assert.InDelta(t, wantOdds[i], c.Odds, 1e-9, "face %d", i+1)
		assert.True(t, c.Bid.Beats(*current), "every raise candidate is legal")
	}
}

func TestBidOdds(t *testing.T) {
	t.Parallel()

	hand := dice.Hand{3, 3, 1}

	t.Run("covered quantity scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, BidOdds(hand, 12, game.Bid{Face: 3, Quantity: 3}))
		assert.Zero(t, BidOdds(hand, 12, game.Bid{Face: 6, Quantity: 1}))
	})

	t.Run("non-wild faces expect two in six", func(t *testing.T) {
		t.Parallel()
		// 3 matching in hand plus 9 unseen dice at 1/3 each.
		assert.InDelta(t, 6.0, BidOdds(hand, 12, game.Bid{Face: 3, Quantity: 4}), 1e-9)
	})

	t.Run("wild face expects one in six", func(t *testing.T) {
		t.Parallel()
		// Only the wild itself counts toward a wild-face bid.
		got := BidOdds(dice.Hand{1, 2}, 10, game.Bid{Face: 1, Quantity: 3})
		assert.InDelta(t, 1.0+8.0/6.0, got, 1e-9)
	})
}

func TestBestTwo(t *testing.T) {
	t.Parallel()

	cands := []Candidate{
		{Odds: 2.5}, {Odds: 4}, {Odds: 6}, {Odds: 4}, {Odds: 4}, {Odds: 4},
	}
	best, second := bestTwo(cands)
	assert.Equal(t, 2, best)
	assert.Equal(t, 1, second, "ties resolve to the lowest face")

	// All-zero openings tie-break to the first candidate.
	best, second = bestTwo([]Candidate{{}, {}, {}})
	assert.Equal(t, 0, best)
	assert.Equal(t, 1, second)
}
