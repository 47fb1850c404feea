// Package bot implements the bid-odds estimator and the difficulty-tiered
// decision policies behind every non-human seat. The engine is stateless:
// each turn it re-derives everything from a snapshot of the game and issues
// exactly one action against the game engine.
package bot

import (
	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
)

// Candidate pairs a potential next bid with its odds score. Scores are an
// expected-count heuristic, comparable only to other scores computed the same
// way; they are not probabilities.
type Candidate struct {
	Bid  game.Bid
	Odds float64
}

// Estimate computes the six candidate bids for a hand, one per face in face
// order. With no standing bid each candidate claims exactly what the hand
// already accounts for (own tally including wilds); with a standing bid each
// candidate is the minimal legal raise on its face.
func Estimate(hand dice.Hand, totalDice int, current *game.Bid) []Candidate {
	tally := hand.Tally()

	out := make([]Candidate, 0, dice.NumFaces)
	for f := dice.Face(1); f <= dice.NumFaces; f++ {
		var b game.Bid
		if current != nil {
			b = game.MinRaise(*current, f)
		} else {
			b = game.Bid{Face: f, Quantity: tally[f]}
		}
		out = append(out, Candidate{Bid: b, Odds: BidOdds(hand, totalDice, b)})
	}
	return out
}

// BidOdds scores a bid against the bot's own hand: dice the hand already
// contributes (exact matches plus wilds) plus the expected matches among the
// dice it cannot see. A bid whose quantity the hand size already covers
// scores zero; it asserts nothing beyond what the bot is holding.
func BidOdds(hand dice.Hand, totalDice int, b game.Bid) float64 {
	if len(hand) >= b.Quantity {
		return 0
	}

	matching := float64(hand.CountMatching(b.Face))
	unknown := float64(totalDice - len(hand))

	// A non-wild face hits on two of six symbols (itself or a wild); the
	// wild face only hits on itself.
	if b.Face.IsWild() {
		return matching + unknown*(1.0/6.0)
	}
	return matching + unknown*(2.0/6.0)
}

// bestTwo returns the indexes of the highest and second-highest scoring
// candidates. Ties resolve to the lowest face.
func bestTwo(cands []Candidate) (best, second int) {
	best = 0
	for i, c := range cands {
		if c.Odds > cands[best].Odds {
			best = i
		}
	}
	second = -1
	for i, c := range cands {
		if i == best {
			continue
		}
		if second < 0 || c.Odds > cands[second].Odds {
			second = i
		}
	}
	return best, second
}
