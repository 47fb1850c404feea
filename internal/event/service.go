package event

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsdice/internal/game"
)

const repoTimeout = 2 * time.Second

// Service fans game events out to per-player queues and drains them on
// request. It implements game.EventSink.
type Service struct {
	repo   Repository
	logger *log.Logger
}

// NewService creates a feed service over the given repository
func NewService(repo Repository, logger *log.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.WithPrefix("events"),
	}
}

// Pop returns and clears the pending events for a player
func (s *Service) Pop(ctx context.Context, playerKey string) ([]Event, error) {
	events, err := s.repo.Get(ctx, playerKey)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, playerKey); err != nil {
		return nil, err
	}
	return events, nil
}

// RoundStart implements game.EventSink
func (s *Service) RoundStart(g *game.Game) {
	ev := newEvent(TypeRoundStart)
	counts := make([]DiceCount, len(g.Players))
	for i, p := range g.Players {
		counts[i] = DiceCount{Name: p.Name, DiceCount: len(p.Hand)}
	}
	ev.RoundStart = &RoundStartPayload{DiceCounts: counts}
	s.fanOut(g, ev, nil)
}

// BidPlaced implements game.EventSink
func (s *Service) BidPlaced(g *game.Game, bid game.Bid, bidder *game.Player) {
	ev := newEvent(TypeBid)
	ev.Bid = &BidPayload{Bid: bid, Bidder: bidder.Name}
	s.fanOut(g, ev, nil)
}

// Challenge implements game.EventSink
func (s *Service) Challenge(g *game.Game, bid game.Bid, challenger, defender *game.Player, success bool) {
	ev := newEvent(TypeChallenge)
	pool := make([]PlayerDice, len(g.Players))
	for i, p := range g.Players {
		pool[i] = PlayerDice{Name: p.Name, Dice: p.Hand.Copy()}
	}
	ev.Challenge = &ChallengePayload{
		Challenger: challenger.Name,
		Defender:   defender.Name,
		Bid:        bid,
		DicePool:   pool,
		Success:    success,
	}
	s.fanOut(g, ev, nil)
}

// GameEnd implements game.EventSink
func (s *Service) GameEnd(g *game.Game, winner *game.Player) {
	ev := newEvent(TypeGameEnd)
	ev.GameEnd = &GameEndPayload{Winner: winner.Name}
	s.fanOut(g, ev, nil)
}

// Peek implements game.EventSink. The peeker already knows what they saw.
func (s *Service) Peek(g *game.Game, peeker *game.Player) {
	ev := newEvent(TypePeek)
	ev.Peek = &PeekPayload{Peeker: peeker.Name}
	s.fanOut(g, ev, peeker)
}

// fanOut appends an event to every player's queue, skipping exclude.
// The game engine calls sinks synchronously with no context, so fan-out
// carries its own timeout.
func (s *Service) fanOut(g *game.Game, ev Event, exclude *game.Player) {
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	for _, p := range g.Players {
		if p == exclude {
			continue
		}
		key := game.Token(g.Code, p.Code)
		if err := s.repo.Append(ctx, key, ev); err != nil {
			s.logger.Error("Failed to record event", "error", err, "type", ev.Type, "player", p.Name)
		}
	}
}
