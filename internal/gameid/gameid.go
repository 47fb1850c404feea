// Package gameid generates the short codes used for games and players.
// Codes use Crockford's base32 alphabet so they survive being read aloud
// or typed from a phone.
package gameid

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// GameCodeLen is the length of a game code.
const GameCodeLen = 6

// PlayerCodeLen is the length of a player code.
const PlayerCodeLen = 8

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntBetween(min, max int) int
}

// Generator produces codes with configurable randomness
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator with optional RandSource; nil falls
// back to crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// GameCode returns a fresh game code
func (g *Generator) GameCode() string {
	return g.code(GameCodeLen)
}

// PlayerCode returns a fresh player code
func (g *Generator) PlayerCode() string {
	return g.code(PlayerCodeLen)
}

func (g *Generator) code(n int) string {
	out := make([]byte, n)
	if g.randSource != nil {
		for i := range out {
			out[i] = alphabet[g.randSource.IntBetween(0, len(alphabet)-1)]
		}
		return string(out)
	}
	if _, err := rand.Read(out); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	for i := range out {
		out[i] = alphabet[int(out[i])%len(alphabet)]
	}
	return string(out)
}

// Validate checks a code is non-empty and drawn from the base32 alphabet.
// Player codes and game codes share the same shape; callers check length.
func Validate(code string) error {
	if code == "" {
		return fmt.Errorf("empty code")
	}
	for i, c := range code {
		valid := false
		for _, a := range alphabet {
			if c == a {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
