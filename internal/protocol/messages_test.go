package protocol

import (
	"testing"

	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewForRedactsOtherHands(t *testing.T) {
	t.Parallel()

	bid := game.Bid{Face: 4, Quantity: 2}
	g := &game.Game{
		Code:          "g1",
		State:         game.StateInProgress,
		CurrentPlayer: 1,
		CurrentBid:    &bid,
		Players: []*game.Player{
			{Name: "alice", Code: "p0", Hand: dice.Hand{2, 2, 3}, Difficulty: game.DifficultyHuman},
			{Name: "hal", Code: "p1", Hand: dice.Hand{4, 5}, Difficulty: game.DifficultyHard},
			{Name: "out", Code: "p2", Hand: dice.Hand{}, Difficulty: game.DifficultyEasy},
		},
	}

	view := ViewFor(g, "p0")
	require.Len(t, view.Players, 3)

	assert.Equal(t, dice.Hand{2, 2, 3}, view.YourHand)
	assert.False(t, view.YourTurn)
	assert.Equal(t, &bid, view.CurrentBid)

	assert.Equal(t, PlayerView{Name: "alice", DiceCount: 3, Difficulty: "human"}, view.Players[0])
	assert.Equal(t, PlayerView{Name: "hal", DiceCount: 2, Difficulty: "hard", CurrentTurn: true}, view.Players[1])
	assert.Equal(t, PlayerView{Name: "out", Difficulty: "easy", Eliminated: true}, view.Players[2])

	// The view's hand is a copy of the player's.
	view.YourHand[0] = 6
	assert.Equal(t, dice.Face(2), g.Players[0].Hand[0])
}

func TestViewForActingPlayer(t *testing.T) {
	t.Parallel()

	g := &game.Game{
		Code:          "g1",
		State:         game.StateInProgress,
		CurrentPlayer: 0,
		Players: []*game.Player{
			{Name: "alice", Code: "p0", Hand: dice.Hand{2, 2}},
			{Name: "bob", Code: "p1", Hand: dice.Hand{4}},
		},
	}

	view := ViewFor(g, "p0")
	assert.True(t, view.YourTurn)
	assert.True(t, view.Players[0].CurrentTurn)
	assert.False(t, view.Players[1].CurrentTurn)
}
