// Package game implements the authoritative liar's dice state machine: lobby
// and seating, bid/challenge commits, round flow and elimination. The bot
// engine in internal/bot plays against this package through the same
// operations human players use.
package game

import (
	"fmt"

	"github.com/lox/liarsdice/internal/dice"
)

// State represents the lifecycle phase of a game
type State string

const (
	StateLobby      State = "Lobby"
	StateInProgress State = "In Progress"
	StateFinished   State = "Finished"
)

// Difficulty is a player's skill tier. Human players carry DifficultyHuman;
// everything else is a bot tier dispatched in internal/bot.
type Difficulty int

const (
	DifficultyHuman Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// IsBot reports whether the tier is played by the decision engine
func (d Difficulty) IsBot() bool {
	return d != DifficultyHuman
}

// String returns the lowercase tier name
func (d Difficulty) String() string {
	switch d {
	case DifficultyHuman:
		return "human"
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a tier name
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "human":
		return DifficultyHuman, nil
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyHuman, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Bid is a claim that at least Quantity dice showing Face (or wild) exist
// across all players' hands.
type Bid struct {
	Face     dice.Face `json:"face"`
	Quantity int       `json:"quantity"`
}

// Beats reports whether b is a legal raise over prev: a higher quantity, or
// the same quantity on a higher face.
func (b Bid) Beats(prev Bid) bool {
	if b.Quantity != prev.Quantity {
		return b.Quantity > prev.Quantity
	}
	return b.Face > prev.Face
}

// MinRaise returns the minimal legal raise over prev for the given face:
// same quantity when the face is higher, quantity+1 otherwise.
func MinRaise(prev Bid, face dice.Face) Bid {
	if face > prev.Face {
		return Bid{Face: face, Quantity: prev.Quantity}
	}
	return Bid{Face: face, Quantity: prev.Quantity + 1}
}

func (b Bid) String() string {
	return fmt.Sprintf("%dx%d", b.Quantity, int(b.Face))
}

// Player is a seat in a game. Code is the player's private identity; the
// session token is derived from it (see token.go).
type Player struct {
	Name       string     `json:"name"`
	Code       string     `json:"code"`
	Hand       dice.Hand  `json:"hand"`
	Difficulty Difficulty `json:"difficulty"`
}

// Eliminated reports whether the player is out of the game
func (p *Player) Eliminated() bool {
	return len(p.Hand) == 0
}

// Game is the full authoritative state. CurrentPlayer and LastBidder are -1
// when unset. CurrentBid is nil only at the start of a bidding round.
type Game struct {
	Code          string    `json:"code"`
	State         State     `json:"state"`
	CurrentPlayer int       `json:"current_player"`
	LastBidder    int       `json:"last_bidder"`
	Players       []*Player `json:"players"`
	CurrentBid    *Bid      `json:"current_bid,omitempty"`
}

// Clone returns a deep copy. Stores hand out clones so concurrent readers
// never share state with in-flight commits.
func (g *Game) Clone() *Game {
	out := *g
	if g.CurrentBid != nil {
		bid := *g.CurrentBid
		out.CurrentBid = &bid
	}
	out.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		cp := *p
		cp.Hand = p.Hand.Copy()
		out.Players[i] = &cp
	}
	return &out
}

// TotalDice returns the number of dice still in play across all hands
func (g *Game) TotalDice() int {
	total := 0
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}

// PlayerByCode finds a seat by player code
func (g *Game) PlayerByCode(code string) (int, *Player) {
	for i, p := range g.Players {
		if p.Code == code {
			return i, p
		}
	}
	return -1, nil
}

// Acting returns the player whose turn it is, or nil outside of a turn
func (g *Game) Acting() *Player {
	if g.CurrentPlayer < 0 || g.CurrentPlayer >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentPlayer]
}

// nextAlive returns the index of the next non-eliminated player after from,
// wrapping around. Returns -1 if no one else holds dice.
func (g *Game) nextAlive(from int) int {
	n := len(g.Players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !g.Players[i].Eliminated() {
			return i
		}
	}
	return -1
}

// survivors returns the players still holding dice
func (g *Game) survivors() []*Player {
	var alive []*Player
	for _, p := range g.Players {
		if !p.Eliminated() {
			alive = append(alive, p)
		}
	}
	return alive
}
