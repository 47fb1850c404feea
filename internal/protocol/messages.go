// Package protocol defines the JSON messages exchanged over the websocket.
package protocol

import (
	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/event"
	"github.com/lox/liarsdice/internal/game"
)

// Request types (client -> server)
const (
	TypeCreate    = "create"
	TypeJoin      = "join"
	TypeAddBot    = "add_bot"
	TypeStart     = "start"
	TypeBid       = "bid"
	TypeChallenge = "challenge"
	TypePeek      = "peek"
	TypeEvents    = "events"
	TypeState     = "state"
)

// Response types (server -> client)
const (
	TypeWelcome    = "welcome"
	TypeGameState  = "game_state"
	TypeHand       = "hand"
	TypeEventBatch = "event_batch"
	TypeError      = "error"
)

// Request is the client -> server envelope; fields beyond Type are set
// per request type.
type Request struct {
	Type       string `json:"type"`
	Name       string `json:"name,omitempty"`
	Code       string `json:"code,omitempty"`
	Token      string `json:"token,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
	Face       int    `json:"face,omitempty"`
}

// Response is the server -> client envelope
type Response struct {
	Type   string        `json:"type"`
	Token  string        `json:"token,omitempty"`
	Game   *GameView     `json:"game,omitempty"`
	Hand   dice.Hand     `json:"hand,omitempty"`
	Events []event.Event `json:"events,omitempty"`
	Error  *ErrorInfo    `json:"error,omitempty"`
}

// ErrorInfo carries a stable machine code plus a human message
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes mirror the game layer's sentinel errors.
const (
	CodeGameNotFound = "game_not_found"
	CodeNotYourTurn  = "not_your_turn"
	CodeInvalidBid   = "invalid_bid"
	CodeNoCurrentBid = "no_current_bid"
	CodeInvalidState = "invalid_state"
	CodeNotHost      = "not_host"
	CodeInvalidToken = "invalid_token"
	CodeBadRequest   = "bad_request"
	CodeInternal     = "internal"
)

// PlayerView is a seat as seen by another player: name and dice count only.
type PlayerView struct {
	Name        string `json:"name"`
	DiceCount   int    `json:"dice_count"`
	Difficulty  string `json:"difficulty"`
	CurrentTurn bool   `json:"current_turn"`
	Eliminated  bool   `json:"eliminated"`
}

// GameView is the redacted game snapshot sent to a viewer. Only the viewer's
// own hand is included.
type GameView struct {
	Code       string       `json:"code"`
	State      game.State   `json:"state"`
	Players    []PlayerView `json:"players"`
	CurrentBid *game.Bid    `json:"current_bid,omitempty"`
	YourHand   dice.Hand    `json:"your_hand,omitempty"`
	YourTurn   bool         `json:"your_turn"`
}

// ViewFor builds the redacted view of g for the player with the given code
func ViewFor(g *game.Game, playerCode string) *GameView {
	view := &GameView{
		Code:       g.Code,
		State:      g.State,
		CurrentBid: g.CurrentBid,
		Players:    make([]PlayerView, len(g.Players)),
	}
	for i, p := range g.Players {
		view.Players[i] = PlayerView{
			Name:        p.Name,
			DiceCount:   len(p.Hand),
			Difficulty:  p.Difficulty.String(),
			CurrentTurn: g.CurrentPlayer == i,
			Eliminated:  g.State == game.StateInProgress && p.Eliminated(),
		}
		if p.Code == playerCode {
			view.YourHand = p.Hand.Copy()
			view.YourTurn = g.CurrentPlayer == i
		}
	}
	return view
}
