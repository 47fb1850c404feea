package store

import (
	"testing"

	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGame(code string) *game.Game {
	bid := game.Bid{Face: 3, Quantity: 2}
	return &game.Game{
		Code:          code,
		State:         game.StateInProgress,
		CurrentPlayer: 1,
		LastBidder:    0,
		CurrentBid:    &bid,
		Players: []*game.Player{
			{Name: "alice", Code: "p0", Hand: dice.Hand{2, 2, 3}, Difficulty: game.DifficultyHuman},
			{Name: "hal", Code: "p1", Hand: dice.Hand{4, 5}, Difficulty: game.DifficultyHard},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemory()

	_, err := s.Get("missing")
	require.ErrorIs(t, err, game.ErrGameNotFound)

	g := sampleGame("g1")
	require.NoError(t, s.Save(g))

	got, err := s.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, g, got)
	assert.Equal(t, []string{"g1"}, s.List())

	// Reads are clones; mutating one does not leak into the store.
	got.Players[0].Hand[0] = 6
	again, err := s.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, dice.Face(2), again.Players[0].Hand[0])

	require.NoError(t, s.Delete("g1"))
	_, err = s.Get("g1")
	require.ErrorIs(t, err, game.ErrGameNotFound)
}

func TestSqliteRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.Get("missing")
	require.ErrorIs(t, err, game.ErrGameNotFound)

	g := sampleGame("g1")
	require.NoError(t, s.Save(g))

	got, err := s.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, g, got)
	require.NotNil(t, got.CurrentBid)
	assert.Equal(t, game.Bid{Face: 3, Quantity: 2}, *got.CurrentBid)
	assert.Equal(t, game.DifficultyHard, got.Players[1].Difficulty)

	// Saving again overwrites in place.
	g.State = game.StateFinished
	g.CurrentBid = nil
	require.NoError(t, s.Save(g))

	got, err = s.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, game.StateFinished, got.State)
	assert.Nil(t, got.CurrentBid)

	codes, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, codes)

	require.NoError(t, s.Delete("g1"))
	_, err = s.Get("g1")
	require.ErrorIs(t, err, game.ErrGameNotFound)
}
