// Package event implements the per-player notification feed. Every committed
// game action fans out an event to each player's queue; clients drain their
// queue with Pop. Queues live behind the Repository interface with in-memory
// and DynamoDB implementations.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
)

// Type discriminates the feed event kinds
type Type string

const (
	TypeRoundStart Type = "round_start"
	TypeBid        Type = "bid"
	TypeChallenge  Type = "challenge"
	TypeGameEnd    Type = "game_end"
	TypePeek       Type = "peek"
)

// DiceCount is a player's public dice count at round start
type DiceCount struct {
	Name      string `json:"name"`
	DiceCount int    `json:"dice_count"`
}

// PlayerDice is a player's revealed hand after a challenge
type PlayerDice struct {
	Name string    `json:"name"`
	Dice dice.Hand `json:"dice"`
}

// Event is the feed envelope. Exactly one payload field is set, matching
// Type.
type Event struct {
	ID   string    `json:"id"`
	Type Type      `json:"type"`
	Time time.Time `json:"time"`

	RoundStart *RoundStartPayload `json:"round_start,omitempty"`
	Bid        *BidPayload        `json:"bid,omitempty"`
	Challenge  *ChallengePayload  `json:"challenge,omitempty"`
	GameEnd    *GameEndPayload    `json:"game_end,omitempty"`
	Peek       *PeekPayload       `json:"peek,omitempty"`
}

// RoundStartPayload announces a fresh round and everyone's dice counts
type RoundStartPayload struct {
	DiceCounts []DiceCount `json:"dice_counts"`
}

// BidPayload announces a committed bid
type BidPayload struct {
	Bid    game.Bid `json:"bid"`
	Bidder string   `json:"bidder"`
}

// ChallengePayload announces a challenge resolution with the full reveal
type ChallengePayload struct {
	Challenger string       `json:"challenger"`
	Defender   string       `json:"defender"`
	Bid        game.Bid     `json:"bid"`
	DicePool   []PlayerDice `json:"dice_pool"`
	Success    bool         `json:"success"`
}

// GameEndPayload announces the winner
type GameEndPayload struct {
	Winner string `json:"winner"`
}

// PeekPayload tells the other players someone looked at their dice
type PeekPayload struct {
	Peeker string `json:"peeker"`
}

// Repository stores per-player event queues. Keys are session tokens
// ("<gameCode>-<playerCode>") so feeds are scoped per game.
type Repository interface {
	Append(ctx context.Context, playerKey string, ev Event) error
	Get(ctx context.Context, playerKey string) ([]Event, error)
	Delete(ctx context.Context, playerKey string) error
}

// newEvent stamps a fresh envelope
func newEvent(t Type) Event {
	return Event{ID: uuid.NewString(), Type: t, Time: time.Now().UTC()}
}
