// Package dice holds the value types for liar's dice hands. A Face is a die
// result in 1..6; ones are wild and count toward every other face when
// tallying.
package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Wild is the face that counts toward every other face's tally.
const Wild Face = 1

// NumFaces is the number of distinct die faces.
const NumFaces = 6

// HandSize is the number of dice each player starts with.
const HandSize = 5

// Face represents a single die result
type Face int

// Valid reports whether the face is in 1..6
func (f Face) Valid() bool {
	return f >= 1 && f <= NumFaces
}

// IsWild reports whether the face counts toward every other face
func (f Face) IsWild() bool {
	return f == Wild
}

// String returns the face as a digit
func (f Face) String() string {
	return strconv.Itoa(int(f))
}

// Hand represents one player's concealed dice
type Hand []Face

// String renders the hand like "5 3 3 4 1"
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, f := range h {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// Copy returns an independent copy of the hand
func (h Hand) Copy() Hand {
	dup := make(Hand, len(h))
	copy(dup, h)
	return dup
}

// CountExact returns how many dice show exactly the given face
func (h Hand) CountExact(face Face) int {
	n := 0
	for _, f := range h {
		if f == face {
			n++
		}
	}
	return n
}

// CountMatching returns how many dice count toward a bid on the given face:
// exact matches plus wilds, except that wilds only count for themselves when
// the face is wild.
func (h Hand) CountMatching(face Face) int {
	if face.IsWild() {
		return h.CountExact(Wild)
	}
	return h.CountExact(face) + h.CountExact(Wild)
}

// Tally returns the per-face counts including the wild contribution, indexed
// by face (index 0 unused). Tally[1] is the raw wild count.
func (h Hand) Tally() [NumFaces + 1]int {
	var tally [NumFaces + 1]int
	for _, f := range h {
		if f.Valid() {
			tally[f]++
		}
	}
	wilds := tally[Wild]
	for f := Wild + 1; f <= NumFaces; f++ {
		tally[f] += wilds
	}
	return tally
}

// Validate checks every face in the hand is legal
func (h Hand) Validate() error {
	for i, f := range h {
		if !f.Valid() {
			return fmt.Errorf("die %d: invalid face %d", i, int(f))
		}
	}
	return nil
}
