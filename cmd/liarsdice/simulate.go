package main

import (
	"fmt"
	"time"

	"github.com/lox/liarsdice/internal/bot"
	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/game"
	"github.com/lox/liarsdice/internal/randutil"
	"github.com/lox/liarsdice/internal/store"
)

// SimulateCmd pits bot tiers against each other over full games and reports
// per-seat win counts.
type SimulateCmd struct {
	Players []string `help:"Bot tiers, in seat order" default:"easy,medium,hard"`
	Games   int      `help:"Number of games to play" default:"100"`
	Seed    int64    `help:"Random seed (0 uses the clock)"`
	Debug   bool     `help:"Enable debug logging"`
}

// maxTurns bounds a single game; a run this long means the engine stalled.
const maxTurns = 10_000

func (c *SimulateCmd) Run() error {
	if len(c.Players) < 2 {
		return fmt.Errorf("need at least two bot seats")
	}

	tiers := make([]game.Difficulty, len(c.Players))
	for i, name := range c.Players {
		tier, err := game.ParseDifficulty(name)
		if err != nil {
			return err
		}
		if !tier.IsBot() {
			return fmt.Errorf("seat %d: simulation seats must be bot tiers", i)
		}
		tiers[i] = tier
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := setupLogger(c.Debug)
	rng := randutil.NewPCG(seed)
	gameStore := store.NewMemory()
	engine := game.NewEngine(gameStore, nil, rng, logger)
	bots := bot.NewEngine(rng, logger)
	roller := dice.NewRoller(rng)

	wins := make([]int, len(tiers))
	start := time.Now()

	for n := 0; n < c.Games; n++ {
		g := &game.Game{
			Code:          fmt.Sprintf("sm%d", n),
			State:         game.StateInProgress,
			CurrentPlayer: rng.IntBetween(0, len(tiers)-1),
			LastBidder:    -1,
		}
		for i, tier := range tiers {
			g.Players = append(g.Players, &game.Player{
				Name:       fmt.Sprintf("%s-%d", tier, i),
				Code:       fmt.Sprintf("p%d", i),
				Hand:       roller.Roll(dice.HandSize),
				Difficulty: tier,
			})
		}
		if err := gameStore.Save(g); err != nil {
			return err
		}

		winner, err := playOut(engine, bots, g.Code)
		if err != nil {
			return fmt.Errorf("game %d: %w", n, err)
		}
		wins[winner]++
	}

	fmt.Printf("Played %d games in %s (seed %d)\n", c.Games, time.Since(start).Round(time.Millisecond), seed)
	for i, tier := range tiers {
		pct := 100 * float64(wins[i]) / float64(c.Games)
		fmt.Printf("  seat %d %-6s  %5d wins (%.1f%%)\n", i, tier, wins[i], pct)
	}
	return nil
}

// playOut drives bot turns until the game finishes and returns the winning
// seat index.
func playOut(engine *game.Engine, bots *bot.Engine, code string) (int, error) {
	for turn := 0; turn < maxTurns; turn++ {
		g, err := engine.Get(code)
		if err != nil {
			return 0, err
		}
		if g.State == game.StateFinished {
			for i, p := range g.Players {
				if !p.Eliminated() {
					return i, nil
				}
			}
			return 0, fmt.Errorf("finished game has no survivor")
		}

		actor := g.Acting()
		token := game.Token(code, actor.Code)
		if err := bots.PlayTurn(token, g, engine); err != nil {
			return 0, err
		}
	}
	return 0, fmt.Errorf("game exceeded %d turns", maxTurns)
}
