package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/liarsdice/internal/bot"
	"github.com/lox/liarsdice/internal/event"
	"github.com/lox/liarsdice/internal/game"
	"github.com/lox/liarsdice/internal/randutil"
	"github.com/lox/liarsdice/internal/server"
	"github.com/lox/liarsdice/internal/store"
)

// ServerCmd runs the websocket server
type ServerCmd struct {
	Config string `help:"Path to HCL config file" default:"liarsdice.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(c.Debug || cfg.Server.LogLevel == "debug")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var gameStore game.Store
	switch cfg.Store.Backend {
	case "sqlite":
		db, err := store.OpenSqlite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		gameStore = db
	default:
		gameStore = store.NewMemory()
	}

	var eventRepo event.Repository
	switch cfg.Events.Backend {
	case "dynamodb":
		repo, err := event.NewDynamoRepository(ctx, cfg.Events.Table)
		if err != nil {
			return err
		}
		eventRepo = repo
	default:
		eventRepo = event.NewMemoryRepository()
	}
	events := event.NewService(eventRepo, logger)

	rng := randutil.NewPCG(time.Now().UnixNano())
	engine := game.NewEngine(gameStore, events, rng, logger)
	bots := bot.NewEngine(rng, logger)

	service := server.NewGameService(engine, bots, events, quartz.NewReal(), cfg.BotDelay(), logger)
	srv := server.NewServer(cfg.ListenAddress(), service, logger)

	logger.Info("Liar's dice server starting",
		"addr", cfg.ListenAddress(),
		"store", cfg.Store.Backend,
		"events", cfg.Events.Backend)
	return srv.Start(ctx)
}
