package game

import (
	"fmt"
	"strings"

	"github.com/lox/liarsdice/internal/gameid"
)

// Token builds the session token a player presents with every action.
// Tokens are "<gameCode>-<playerCode>"; neither code contains a dash.
func Token(gameCode, playerCode string) string {
	return gameCode + "-" + playerCode
}

// ParseToken splits a session token into game and player codes. Both halves
// must be drawn from the code alphabet.
func ParseToken(token string) (gameCode, playerCode string, err error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	if err := gameid.Validate(parts[0]); err != nil {
		return "", "", fmt.Errorf("%w: game code: %v", ErrInvalidToken, err)
	}
	if err := gameid.Validate(parts[1]); err != nil {
		return "", "", fmt.Errorf("%w: player code: %v", ErrInvalidToken, err)
	}
	return parts[0], parts[1], nil
}
