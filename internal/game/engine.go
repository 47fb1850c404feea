package game

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsdice/internal/dice"
	"github.com/lox/liarsdice/internal/gameid"
)

// Store persists games between actions. Implementations live in
// internal/store; Get returns ErrGameNotFound for unknown codes.
type Store interface {
	Save(g *Game) error
	Get(code string) (*Game, error)
	Delete(code string) error
}

// EventSink receives game lifecycle notifications for the per-player feed.
// Implementations live in internal/event.
type EventSink interface {
	RoundStart(g *Game)
	BidPlaced(g *Game, bid Bid, bidder *Player)
	Challenge(g *Game, bid Bid, challenger, defender *Player, success bool)
	GameEnd(g *Game, winner *Player)
	Peek(g *Game, peeker *Player)
}

// NopSink discards all events
type NopSink struct{}

func (NopSink) RoundStart(*Game)                            {}
func (NopSink) BidPlaced(*Game, Bid, *Player)               {}
func (NopSink) Challenge(*Game, Bid, *Player, *Player, bool) {}
func (NopSink) GameEnd(*Game, *Player)                      {}
func (NopSink) Peek(*Game, *Player)                         {}

// Engine validates and commits all game actions. Commits are serialized per
// game so at most one bid or challenge lands per turn window.
type Engine struct {
	store  Store
	events EventSink
	roller *dice.Roller
	rng    dice.Rand
	ids    *gameid.Generator
	logger *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates an engine over the given store and event sink. The rng
// drives dice rolls and the starting-player draw.
func NewEngine(store Store, events EventSink, rng dice.Rand, logger *log.Logger) *Engine {
	if events == nil {
		events = NopSink{}
	}
	return &Engine{
		store:  store,
		events: events,
		roller: dice.NewRoller(rng),
		rng:    rng,
		ids:    gameid.NewGenerator(nil),
		logger: logger.WithPrefix("game"),
		locks:  make(map[string]*sync.Mutex),
	}
}

// lockGame returns the commit lock for a game code
func (e *Engine) lockGame(code string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[code]
	if !ok {
		l = &sync.Mutex{}
		e.locks[code] = l
	}
	return l
}

// Create starts a new lobby with the host seated and returns the game along
// with the host's session token.
func (e *Engine) Create(hostName string) (*Game, string, error) {
	if hostName == "" {
		return nil, "", fmt.Errorf("%w: empty player name", ErrInvalidState)
	}

	g := &Game{
		Code:          e.ids.GameCode(),
		State:         StateLobby,
		CurrentPlayer: -1,
		LastBidder:    -1,
		Players: []*Player{{
			Name:       hostName,
			Code:       e.ids.PlayerCode(),
			Difficulty: DifficultyHuman,
		}},
	}
	if err := e.store.Save(g); err != nil {
		return nil, "", fmt.Errorf("save game: %w", err)
	}

	e.logger.Info("Game created", "game", g.Code, "host", hostName)
	return g, Token(g.Code, g.Players[0].Code), nil
}

// Join seats a new human player in the lobby and returns their token
func (e *Engine) Join(code, name string) (*Game, string, error) {
	lock := e.lockGame(code)
	lock.Lock()
	defer lock.Unlock()

	g, err := e.store.Get(code)
	if err != nil {
		return nil, "", err
	}
	if g.State != StateLobby {
		return nil, "", fmt.Errorf("%w: game %s already started", ErrInvalidState, code)
	}

	p := &Player{Name: name, Code: e.ids.PlayerCode(), Difficulty: DifficultyHuman}
	g.Players = append(g.Players, p)
	if err := e.store.Save(g); err != nil {
		return nil, "", fmt.Errorf("save game: %w", err)
	}

	e.logger.Info("Player joined", "game", code, "player", name)
	return g, Token(code, p.Code), nil
}

// AddBot seats a bot of the given tier. Host only, lobby only.
func (e *Engine) AddBot(token, name string, difficulty Difficulty) error {
	if !difficulty.IsBot() {
		return fmt.Errorf("%w: bots cannot be human tier", ErrInvalidState)
	}

	gameCode, _, err := ParseToken(token)
	if err != nil {
		return err
	}

	lock := e.lockGame(gameCode)
	lock.Lock()
	defer lock.Unlock()

	g, caller, err := e.authorize(token)
	if err != nil {
		return err
	}
	if g.State != StateLobby {
		return fmt.Errorf("%w: game %s already started", ErrInvalidState, g.Code)
	}
	if caller != g.Players[0] {
		return ErrNotHost
	}

	g.Players = append(g.Players, &Player{
		Name:       name,
		Code:       e.ids.PlayerCode(),
		Difficulty: difficulty,
	})
	if err := e.store.Save(g); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	e.logger.Info("Bot added", "game", g.Code, "bot", name, "difficulty", difficulty)
	return nil
}

// Start rolls opening hands and picks a random starting player. Host only.
func (e *Engine) Start(token string) error {
	gameCode, _, err := ParseToken(token)
	if err != nil {
		return err
	}

	lock := e.lockGame(gameCode)
	lock.Lock()
	defer lock.Unlock()

	g, caller, err := e.authorize(token)
	if err != nil {
		return err
	}
	if g.State != StateLobby {
		return fmt.Errorf("%w: game %s already started", ErrInvalidState, g.Code)
	}
	if caller != g.Players[0] {
		return ErrNotHost
	}
	if len(g.Players) < 2 {
		return fmt.Errorf("%w: need at least two players", ErrInvalidState)
	}

	for _, p := range g.Players {
		p.Hand = e.roller.Roll(dice.HandSize)
	}
	g.State = StateInProgress
	g.CurrentPlayer = e.rng.IntBetween(0, len(g.Players)-1)
	g.LastBidder = -1
	g.CurrentBid = nil

	if err := e.store.Save(g); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	e.events.RoundStart(g)
	e.logger.Info("Game started", "game", g.Code, "players", len(g.Players), "first", g.Acting().Name)
	return nil
}

// PlaceBid commits a bid for the acting player. The first bid of a round may
// claim any quantity >= 1; later bids must beat the standing bid.
func (e *Engine) PlaceBid(quantity int, face dice.Face, token string) error {
	gameCode, _, err := ParseToken(token)
	if err != nil {
		return err
	}

	lock := e.lockGame(gameCode)
	lock.Lock()
	defer lock.Unlock()

	g, caller, err := e.authorize(token)
	if err != nil {
		return err
	}
	idx, _ := g.PlayerByCode(caller.Code)
	if err := e.requireTurn(g, idx); err != nil {
		return err
	}

	if !face.Valid() {
		return fmt.Errorf("%w: face %d out of range", ErrInvalidBid, int(face))
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidBid)
	}
	bid := Bid{Face: face, Quantity: quantity}
	if g.CurrentBid != nil && !bid.Beats(*g.CurrentBid) {
		return fmt.Errorf("%w: %s does not beat %s", ErrInvalidBid, bid, *g.CurrentBid)
	}

	g.CurrentBid = &bid
	g.LastBidder = idx
	g.CurrentPlayer = g.nextAlive(idx)

	if err := e.store.Save(g); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	e.events.BidPlaced(g, bid, caller)
	e.logger.Info("Bid placed", "game", g.Code, "player", caller.Name, "bid", bid)
	return nil
}

// ChallengeBid resolves the standing bid against ground truth. The loser
// forfeits one die; the game ends when a single player holds dice, otherwise
// all hands reroll and the loser (or the next survivor) leads the new round.
func (e *Engine) ChallengeBid(token string) error {
	gameCode, _, err := ParseToken(token)
	if err != nil {
		return err
	}

	lock := e.lockGame(gameCode)
	lock.Lock()
	defer lock.Unlock()

	g, caller, err := e.authorize(token)
	if err != nil {
		return err
	}
	idx, _ := g.PlayerByCode(caller.Code)
	if err := e.requireTurn(g, idx); err != nil {
		return err
	}
	if g.CurrentBid == nil {
		return ErrNoCurrentBid
	}

	bid := *g.CurrentBid
	defender := g.Players[g.LastBidder]

	actual := 0
	for _, p := range g.Players {
		actual += p.Hand.CountMatching(bid.Face)
	}

	// The challenge succeeds when the bid overstated the pool.
	success := actual < bid.Quantity
	loserIdx := idx
	if success {
		loserIdx = g.LastBidder
	}
	loser := g.Players[loserIdx]

	// Reveal the pool the challenge was judged against, before the loser's
	// die comes off.
	e.events.Challenge(g, bid, caller, defender, success)

	loser.Hand = loser.Hand[:len(loser.Hand)-1]
	e.logger.Info("Challenge resolved",
		"game", g.Code,
		"challenger", caller.Name,
		"defender", defender.Name,
		"bid", bid,
		"actual", actual,
		"loser", loser.Name)

	if alive := g.survivors(); len(alive) == 1 {
		g.State = StateFinished
		g.CurrentPlayer = -1
		g.LastBidder = -1
		g.CurrentBid = nil
		if err := e.store.Save(g); err != nil {
			return fmt.Errorf("save game: %w", err)
		}
		e.events.GameEnd(g, alive[0])
		e.logger.Info("Game finished", "game", g.Code, "winner", alive[0].Name)
		return nil
	}

	// New round: reroll every surviving hand, loser leads.
	for _, p := range g.Players {
		if !p.Eliminated() {
			p.Hand = e.roller.Roll(len(p.Hand))
		}
	}
	g.CurrentBid = nil
	g.LastBidder = -1
	if g.Players[loserIdx].Eliminated() {
		g.CurrentPlayer = g.nextAlive(loserIdx)
	} else {
		g.CurrentPlayer = loserIdx
	}

	if err := e.store.Save(g); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	e.events.RoundStart(g)
	return nil
}

// Peek returns the caller's own hand and notifies the other players
func (e *Engine) Peek(token string) (dice.Hand, error) {
	g, caller, err := e.authorize(token)
	if err != nil {
		return nil, err
	}
	if g.State != StateInProgress {
		return nil, fmt.Errorf("%w: game %s is not in progress", ErrInvalidState, g.Code)
	}

	e.events.Peek(g, caller)
	return caller.Hand.Copy(), nil
}

// Snapshot returns the game a token belongs to
func (e *Engine) Snapshot(token string) (*Game, error) {
	g, _, err := e.authorize(token)
	return g, err
}

// Get returns the game for a code
func (e *Engine) Get(code string) (*Game, error) {
	return e.store.Get(code)
}

// authorize resolves a token to its game and player
func (e *Engine) authorize(token string) (*Game, *Player, error) {
	gameCode, playerCode, err := ParseToken(token)
	if err != nil {
		return nil, nil, err
	}
	g, err := e.store.Get(gameCode)
	if err != nil {
		return nil, nil, err
	}
	_, p := g.PlayerByCode(playerCode)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: unknown player", ErrInvalidToken)
	}
	return g, p, nil
}

// requireTurn checks the game is live and the given seat is acting
func (e *Engine) requireTurn(g *Game, idx int) error {
	if g.State != StateInProgress {
		return fmt.Errorf("%w: game %s is not in progress", ErrInvalidState, g.Code)
	}
	if g.CurrentPlayer != idx {
		return ErrNotYourTurn
	}
	return nil
}
