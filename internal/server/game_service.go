package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/liarsdice/internal/bot"
	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/event"
	"github.com/lox/liarsdice/internal/game"
	"github.com/lox/liarsdice/internal/protocol"
)

// GameService translates protocol requests into game engine operations and
// keeps bot turns moving after every committed human action.
type GameService struct {
	engine   *game.Engine
	bots     *bot.Engine
	events   *event.Service
	clock    quartz.Clock
	botDelay time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	driving map[string]bool
}

// NewGameService wires the engines together. The clock paces bot turns so
// humans see bots take time to act; tests inject a mock clock.
func NewGameService(engine *game.Engine, bots *bot.Engine, events *event.Service, clock quartz.Clock, botDelay time.Duration, logger *log.Logger) *GameService {
	return &GameService{
		engine:   engine,
		bots:     bots,
		events:   events,
		clock:    clock,
		botDelay: botDelay,
		logger:   logger.WithPrefix("service"),
		driving:  make(map[string]bool),
	}
}

// Handle processes a single request envelope
func (s *GameService) Handle(ctx context.Context, req *protocol.Request) *protocol.Response {
	switch req.Type {
	case protocol.TypeCreate:
		return s.handleCreate(req)
	case protocol.TypeJoin:
		return s.handleJoin(req)
	case protocol.TypeAddBot:
		return s.handleAddBot(req)
	case protocol.TypeStart:
		return s.handleStart(req)
	case protocol.TypeBid:
		return s.handleBid(req)
	case protocol.TypeChallenge:
		return s.handleChallenge(req)
	case protocol.TypePeek:
		return s.handlePeek(req)
	case protocol.TypeEvents:
		return s.handleEvents(ctx, req)
	case protocol.TypeState:
		return s.handleState(req)
	default:
		return errorResponse(protocol.CodeBadRequest, "unknown request type "+req.Type)
	}
}

func (s *GameService) handleCreate(req *protocol.Request) *protocol.Response {
	g, token, err := s.engine.Create(req.Name)
	if err != nil {
		return gameError(err)
	}
	_, playerCode, _ := game.ParseToken(token)
	return &protocol.Response{
		Type:  protocol.TypeWelcome,
		Token: token,
		Game:  protocol.ViewFor(g, playerCode),
	}
}

func (s *GameService) handleJoin(req *protocol.Request) *protocol.Response {
	g, token, err := s.engine.Join(req.Code, req.Name)
	if err != nil {
		return gameError(err)
	}
	_, playerCode, _ := game.ParseToken(token)
	return &protocol.Response{
		Type:  protocol.TypeWelcome,
		Token: token,
		Game:  protocol.ViewFor(g, playerCode),
	}
}

func (s *GameService) handleAddBot(req *protocol.Request) *protocol.Response {
	difficulty, err := game.ParseDifficulty(req.Difficulty)
	if err != nil {
		return errorResponse(protocol.CodeBadRequest, err.Error())
	}
	if err := s.engine.AddBot(req.Token, req.Name, difficulty); err != nil {
		return gameError(err)
	}
	return s.stateFor(req.Token)
}

func (s *GameService) handleStart(req *protocol.Request) *protocol.Response {
	if err := s.engine.Start(req.Token); err != nil {
		return gameError(err)
	}
	s.driveBots(req.Token)
	return s.stateFor(req.Token)
}

func (s *GameService) handleBid(req *protocol.Request) *protocol.Response {
	if err := s.engine.PlaceBid(req.Quantity, dice.Face(req.Face), req.Token); err != nil {
		return gameError(err)
	}
	s.driveBots(req.Token)
	return s.stateFor(req.Token)
}

func (s *GameService) handleChallenge(req *protocol.Request) *protocol.Response {
	if err := s.engine.ChallengeBid(req.Token); err != nil {
		return gameError(err)
	}
	s.driveBots(req.Token)
	return s.stateFor(req.Token)
}

func (s *GameService) handlePeek(req *protocol.Request) *protocol.Response {
	hand, err := s.engine.Peek(req.Token)
	if err != nil {
		return gameError(err)
	}
	return &protocol.Response{Type: protocol.TypeHand, Hand: hand}
}

func (s *GameService) handleEvents(ctx context.Context, req *protocol.Request) *protocol.Response {
	// Validate the token belongs to a live game before draining the feed.
	if _, err := s.engine.Snapshot(req.Token); err != nil {
		return gameError(err)
	}
	events, err := s.events.Pop(ctx, req.Token)
	if err != nil {
		return errorResponse(protocol.CodeInternal, err.Error())
	}
	return &protocol.Response{Type: protocol.TypeEventBatch, Events: events}
}

func (s *GameService) handleState(req *protocol.Request) *protocol.Response {
	return s.stateFor(req.Token)
}

// stateFor builds the redacted game view for a token holder
func (s *GameService) stateFor(token string) *protocol.Response {
	g, err := s.engine.Snapshot(token)
	if err != nil {
		return gameError(err)
	}
	_, playerCode, _ := game.ParseToken(token)
	return &protocol.Response{Type: protocol.TypeGameState, Game: protocol.ViewFor(g, playerCode)}
}

// driveBots plays out any run of consecutive bot turns for the game a token
// belongs to. At most one driver runs per game.
func (s *GameService) driveBots(token string) {
	gameCode, _, err := game.ParseToken(token)
	if err != nil {
		return
	}

	s.mu.Lock()
	if s.driving[gameCode] {
		s.mu.Unlock()
		return
	}
	s.driving[gameCode] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.driving, gameCode)
			s.mu.Unlock()
		}()

		for {
			g, err := s.engine.Get(gameCode)
			if err != nil {
				s.logger.Error("Bot driver lost game", "game", gameCode, "error", err)
				return
			}
			if g.State != game.StateInProgress {
				return
			}
			actor := g.Acting()
			if actor == nil || !actor.Difficulty.IsBot() {
				return
			}

			if s.botDelay > 0 {
				timer := s.clock.NewTimer(s.botDelay)
				<-timer.C
			}

			botToken := game.Token(gameCode, actor.Code)
			if err := s.bots.PlayTurn(botToken, g, s.engine); err != nil {
				s.logger.Error("Bot turn failed", "game", gameCode, "bot", actor.Name, "error", err)
				return
			}
		}
	}()
}

// gameError maps the game layer's sentinel errors onto protocol codes
func gameError(err error) *protocol.Response {
	code := protocol.CodeInternal
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		code = protocol.CodeGameNotFound
	case errors.Is(err, game.ErrNotYourTurn):
		code = protocol.CodeNotYourTurn
	case errors.Is(err, game.ErrInvalidBid):
		code = protocol.CodeInvalidBid
	case errors.Is(err, game.ErrNoCurrentBid):
		code = protocol.CodeNoCurrentBid
	case errors.Is(err, game.ErrInvalidState):
		code = protocol.CodeInvalidState
	case errors.Is(err, game.ErrNotHost):
		code = protocol.CodeNotHost
	case errors.Is(err, game.ErrInvalidToken):
		code = protocol.CodeInvalidToken
	}
	return errorResponse(code, err.Error())
}

func errorResponse(code, message string) *protocol.Response {
	return &protocol.Response{
		Type:  protocol.TypeError,
		Error: &protocol.ErrorInfo{Code: code, Message: message},
	}
}
