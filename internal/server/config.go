package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Store  *StoreConfig   `hcl:"store,block"`
	Events *EventsConfig  `hcl:"events,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address    string `hcl:"address,optional"`
	Port       int    `hcl:"port,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	BotDelayMs int    `hcl:"bot_delay_ms,optional"`
}

// StoreConfig selects the game persistence backend
type StoreConfig struct {
	Backend string `hcl:"backend,optional"` // memory | sqlite
	Path    string `hcl:"path,optional"`
}

// EventsConfig selects the event feed backend
type EventsConfig struct {
	Backend string `hcl:"backend,optional"` // memory | dynamodb
	Table   string `hcl:"table,optional"`
}

// DefaultConfig returns the default configuration: in-memory everything,
// local port, a human-visible bot think delay.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:    "localhost",
			Port:       8080,
			LogLevel:   "info",
			BotDelayMs: 750,
		},
		Store:  &StoreConfig{Backend: "memory"},
		Events: &EventsConfig{Backend: "memory"},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.BotDelayMs == 0 {
		config.Server.BotDelayMs = 750
	}
	if config.Store == nil {
		config.Store = &StoreConfig{Backend: "memory"}
	}
	if config.Store.Backend == "" {
		config.Store.Backend = "memory"
	}
	if config.Store.Backend == "sqlite" && config.Store.Path == "" {
		config.Store.Path = "liarsdice.db"
	}
	if config.Events == nil {
		config.Events = &EventsConfig{Backend: "memory"}
	}
	if config.Events.Backend == "" {
		config.Events.Backend = "memory"
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.BotDelayMs < 0 {
		return fmt.Errorf("bot delay must not be negative")
	}

	switch c.Store.Backend {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("sqlite store requires a path")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Events.Backend {
	case "memory":
	case "dynamodb":
		if c.Events.Table == "" {
			return fmt.Errorf("dynamodb events require a table")
		}
	default:
		return fmt.Errorf("unknown events backend %q", c.Events.Backend)
	}

	return nil
}

// ListenAddress returns the full address to bind
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// BotDelay returns the configured bot think delay
func (c *Config) BotDelay() time.Duration {
	return time.Duration(c.Server.BotDelayMs) * time.Millisecond
}
