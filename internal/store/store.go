// Package store provides game persistence behind the game.Store interface:
// an in-memory map for development and a sqlite database for durable games.
package store

import (
	"sync"

	"github.com/lox/liarsdice/internal/game"
)

// Memory is an in-memory game store guarded by a RWMutex. Games are cloned
// on the way in and out, matching the copy semantics of the sqlite store.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{games: make(map[string]*game.Game)}
}

func (m *Memory) Save(g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.Code] = g.Clone()
	return nil
}

func (m *Memory) Get(code string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[code]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return g.Clone(), nil
}

func (m *Memory) Delete(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, code)
	return nil
}

// List returns the codes of all stored games
func (m *Memory) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	codes := make([]string, 0, len(m.games))
	for code := range m.games {
		codes = append(codes, code)
	}
	return codes
}
