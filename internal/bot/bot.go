package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
	"github.com/lox/liarsdice/internal/randutil"
)

// Controller is the slice of the game engine a bot commits through. Commit
// errors propagate unmodified; legality is the controller's authority.
type Controller interface {
	PlaceBid(quantity int, face dice.Face, token string) error
	ChallengeBid(token string) error
}

// Engine drives bot turns. It holds no game state; every PlayTurn works from
// the snapshot it is handed.
type Engine struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewEngine creates a bot engine over the given randomness source
func NewEngine(rng randutil.Source, logger *log.Logger) *Engine {
	return &Engine{
		rng:    rng,
		logger: logger.WithPrefix("bot"),
	}
}

// PlayTurn assembles the acting bot's inputs, runs its tier's policy and
// issues exactly one action against the controller. The acting player must be
// a bot holding at least one die.
func (e *Engine) PlayTurn(token string, g *game.Game, ctrl Controller) error {
	actor := g.Acting()
	if actor == nil {
		return fmt.Errorf("%w: no acting player", game.ErrInvalidState)
	}
	if !actor.Difficulty.IsBot() {
		return fmt.Errorf("%w: acting player %s is not a bot", game.ErrInvalidState, actor.Name)
	}
	if len(actor.Hand) == 0 {
		return fmt.Errorf("%w: acting player %s holds no dice", game.ErrInvalidState, actor.Name)
	}

	totalDice := g.TotalDice()
	cands := Estimate(actor.Hand, totalDice, g.CurrentBid)

	currentOdds := 0.0
	if g.CurrentBid != nil {
		currentOdds = BidOdds(actor.Hand, totalDice, *g.CurrentBid)
	}

	action := decide(actor.Difficulty, cands, g.CurrentBid, currentOdds, totalDice, e.rng)

	if action.Challenge {
		e.logger.Info("Bot challenging",
			"game", g.Code,
			"player", actor.Name,
			"difficulty", actor.Difficulty,
			"currentBid", g.CurrentBid,
			"currentOdds", currentOdds)
		return ctrl.ChallengeBid(token)
	}

	e.logger.Info("Bot bidding",
		"game", g.Code,
		"player", actor.Name,
		"difficulty", actor.Difficulty,
		"bid", action.Bid,
		"totalDice", totalDice)
	return ctrl.PlaceBid(action.Bid.Quantity, action.Bid.Face, token)
}
