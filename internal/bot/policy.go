package bot

import (
	"math"

	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
	"github.com/lox/liarsdice/internal/randutil"
)

// Action is the single decision a policy returns: challenge the standing bid,
// or place Bid.
type Action struct {
	Challenge bool
	Bid       game.Bid
}

// decide dispatches to the policy for the given tier. currentOdds is the
// standing bid rescored against the bot's own hand; it is meaningless when
// current is nil. The tiers are a closed set, so this is a flat branch table
// rather than an interface hierarchy.
func decide(tier game.Difficulty, cands []Candidate, current *game.Bid, currentOdds float64, totalDice int, rng randutil.Source) Action {
	switch tier {
	case game.DifficultyEasy:
		return decideEasy(cands, current, rng)
	case game.DifficultyMedium:
		return decideMedium(cands, current, currentOdds, rng)
	default:
		return decideHard(cands, current, currentOdds, totalDice, rng)
	}
}

// decideEasy opens with the best-scoring candidate, but once a bid stands it
// challenges a quarter of the time and otherwise raises on a face chosen
// without regard to score.
func decideEasy(cands []Candidate, current *game.Bid, rng randutil.Source) Action {
	if current == nil {
		best, _ := bestTwo(cands)
		return place(cands[best].Bid)
	}
	if rng.Chance(0.25) {
		return Action{Challenge: true}
	}
	pick := rng.IntBetween(0, len(cands)-1)
	return place(cands[pick].Bid)
}

// decideMedium weighs its best raise against the standing bid's own odds and
// randomizes around the comparison: inclined to raise when ahead, to
// challenge when behind, with a spread of second-best raises either way.
func decideMedium(cands []Candidate, current *game.Bid, currentOdds float64, rng randutil.Source) Action {
	best, second := bestTwo(cands)

	if current == nil {
		pick := second
		if rng.Chance(0.75) {
			pick = best
		}
		bid := cands[pick].Bid
		bid.Quantity += rng.IntBetween(0, 1)
		return place(bid)
	}

	roll := rng.IntBetween(1, 10)
	if cands[best].Odds > currentOdds {
		switch {
		case roll <= 3:
			return place(cands[second].Bid)
		case roll <= 7:
			return place(cands[best].Bid)
		default:
			return Action{Challenge: true}
		}
	}
	switch {
	case roll <= 6:
		return Action{Challenge: true}
	case roll == 8:
		return place(cands[second].Bid)
	default:
		return place(cands[best].Bid)
	}
}

// decideHard opens with a deliberately noisy bid on a random face, then plays
// deterministically: raise with the best candidate whenever it beats the
// standing bid's odds, challenge otherwise.
func decideHard(cands []Candidate, current *game.Bid, currentOdds float64, totalDice int, rng randutil.Source) Action {
	if current == nil {
		face := dice.Face(rng.IntBetween(1, dice.NumFaces))
		upper := int(math.Round(float64(totalDice) / 6))
		if upper < 1 {
			upper = 1
		}
		quantity := rng.IntBetween(1, rng.IntBetween(1, upper))
		return place(game.Bid{Face: face, Quantity: quantity})
	}

	best, _ := bestTwo(cands)
	if cands[best].Odds > currentOdds {
		return place(cands[best].Bid)
	}
	return Action{Challenge: true}
}

// place wraps a bid as an action, clamping the quantity to the legal minimum.
// Opening candidates can carry a zero quantity when the hand holds nothing on
// that face.
func place(b game.Bid) Action {
	if b.Quantity < 1 {
		b.Quantity = 1
	}
	return Action{Bid: b}
}
