package game

import "errors"

var (
	// ErrGameNotFound indicates no game exists for the given code.
	ErrGameNotFound = errors.New("game not found")

	// ErrNotYourTurn indicates the acting player did not issue the action.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrInvalidBid indicates the bid is illegal given the current bid or
	// game state.
	ErrInvalidBid = errors.New("invalid bid")

	// ErrNoCurrentBid indicates a challenge was issued with no standing bid.
	ErrNoCurrentBid = errors.New("no current bid to challenge")

	// ErrInvalidState indicates the action is not legal in the game's
	// current lifecycle phase.
	ErrInvalidState = errors.New("invalid game state")

	// ErrNotHost indicates a host-only action was issued by another player.
	ErrNotHost = errors.New("only the host may do that")

	// ErrInvalidToken indicates a malformed session token.
	ErrInvalidToken = errors.New("invalid token")
)
