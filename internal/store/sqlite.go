package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lox/liarsdice/internal/game"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	code       TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Sqlite persists games as JSON rows keyed by code. The driver is pure Go,
// so the store works anywhere the server binary runs.
type Sqlite struct {
	db *sql.DB
}

// OpenSqlite opens (creating if needed) a sqlite store at the given path.
// Use ":memory:" for an ephemeral database.
func OpenSqlite(path string) (*Sqlite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Sqlite{db: db}, nil
}

// Close releases the underlying database
func (s *Sqlite) Close() error {
	return s.db.Close()
}

func (s *Sqlite) Save(g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO games (code, state, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET state=excluded.state, data=excluded.data, updated_at=excluded.updated_at`,
		g.Code, string(g.State), string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.Code, err)
	}
	return nil
}

func (s *Sqlite) Get(code string) (*game.Game, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM games WHERE code = ?`, code).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", code, err)
	}

	var g game.Game
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("unmarshal game %s: %w", code, err)
	}
	return &g, nil
}

func (s *Sqlite) Delete(code string) error {
	if _, err := s.db.Exec(`DELETE FROM games WHERE code = ?`, code); err != nil {
		return fmt.Errorf("delete game %s: %w", code, err)
	}
	return nil
}

// List returns the codes of all stored games
func (s *Sqlite) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT code FROM games ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
