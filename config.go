package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gridsnake/game"
)

// Server configuration defaults
const (
	// Server
	ServerAddr    = ":8080"
	WebSocketPath = "/ws"
	StatePath     = "/state"
	HealthPath    = "/healthz"
	PublicURL     = "http://localhost:8080/"

	// Game loop
	MoveTickMS    = 150  // movement tick period
	FoodSpawnMS   = 1000 // food spawn period, independent of movement
	InputSampleMS = 16   // held-key polling period

	// Connections
	MaxPlayers     = 32
	IPCooldownSec  = 2 // min seconds between connections from one IP
	WriteTimeoutMS = 500
	ReadLimitBytes = 512
	SendQueueLen   = 16 // frames buffered per client before it is dropped

	// Logging
	LogLevel = "info"
)

// Config is the resolved process configuration
type Config struct {
	Addr      string
	StaticDir string
	PublicURL string

	Game game.Config

	MoveInterval   time.Duration
	FoodInterval   time.Duration
	SampleInterval time.Duration

	MaxPlayers int
	IPCooldown time.Duration
	TrustProxy bool // take the client IP from X-Forwarded-For

	Autopilot bool
	TUI       bool
	QR        bool

	LogLevel string
	LogFile  string
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Addr:           ServerAddr,
		PublicURL:      PublicURL,
		Game:           game.DefaultConfig(),
		MoveInterval:   MoveTickMS * time.Millisecond,
		FoodInterval:   FoodSpawnMS * time.Millisecond,
		SampleInterval: InputSampleMS * time.Millisecond,
		MaxPlayers:     MaxPlayers,
		IPCooldown:     IPCooldownSec * time.Second,
		LogLevel:       LogLevel,
	}
}

// LoadConfig parses command line flags over the defaults, then applies
// GRIDSNAKE_* environment overrides.
func LoadConfig(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("gridsnake", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address (empty disables the server)")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "directory of static client files served at /")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "URL players use to reach the server, shown by -qr")
	fs.IntVar(&cfg.Game.Arena.Width, "width", cfg.Game.Arena.Width, "arena width in cells")
	fs.IntVar(&cfg.Game.Arena.Height, "height", cfg.Game.Arena.Height, "arena height in cells")
	fs.IntVar(&cfg.Game.Start.X, "start-x", cfg.Game.Start.X, "head column of a fresh snake")
	fs.IntVar(&cfg.Game.Start.Y, "start-y", cfg.Game.Start.Y, "head row of a fresh snake")
	fs.Int64Var(&cfg.Game.Seed, "seed", cfg.Game.Seed, "food RNG seed (0 = time based)")
	fs.DurationVar(&cfg.MoveInterval, "tick", cfg.MoveInterval, "movement tick period")
	fs.DurationVar(&cfg.FoodInterval, "food", cfg.FoodInterval, "food spawn period")
	fs.DurationVar(&cfg.SampleInterval, "sample", cfg.SampleInterval, "input sampling period")
	fs.IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "maximum concurrent WebSocket clients (0 = unlimited)")
	fs.DurationVar(&cfg.IPCooldown, "ip-cooldown", cfg.IPCooldown, "minimum time between connections from one IP")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "use X-Forwarded-For as the client IP (only behind a reverse proxy)")
	fs.BoolVar(&cfg.Autopilot, "autopilot", cfg.Autopilot, "steer automatically when nobody holds a key")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "play in this terminal")
	fs.BoolVar(&cfg.QR, "qr", cfg.QR, "print a QR code of the public URL on startup")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if env := os.Getenv("GRIDSNAKE_ADDR"); env != "" {
		cfg.Addr = env
	}
	if env := os.Getenv("GRIDSNAKE_STATIC_DIR"); env != "" {
		cfg.StaticDir = env
	}
	if env := os.Getenv("GRIDSNAKE_LOG_LEVEL"); env != "" {
		cfg.LogLevel = env
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var errBadInterval = errors.New("intervals must be positive")

// Validate checks the game config and the loop periods
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MoveInterval <= 0 || c.FoodInterval <= 0 || c.SampleInterval <= 0 {
		return fmt.Errorf("config: %w", errBadInterval)
	}
	if c.MaxPlayers < 0 {
		return fmt.Errorf("config: max-players must not be negative, got %d", c.MaxPlayers)
	}
	return nil
}
