// Package config loads the engine's fixed scalar configuration once from
// environment variables, the "sibling configuration module" spec.md §3
// expects — grounded on the teacher's apps/server/internal/auth/factory.go
// NewServiceFromEnv() pattern (env var with a default, validated once at
// startup) and holdem/config.go's Config.validate() convention.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process-wide, load-once configuration for one match run.
type Config struct {
	NumRounds         int
	StartingStack     int
	SmallBlind        int
	BigBlind          int
	NumBoards         int
	StartingGameClock time.Duration
	BuildTimeout      time.Duration
	ConnectTimeout    time.Duration
	PlayerLogSizeLimit int
	EnforceGameClock  bool
	GameLogFilename   string

	Player1Name string
	Player1Path string
	Player2Name string
	Player2Path string
}

// Default returns the reference deployment's configuration (§3): NUM_BOARDS
// = 3, STARTING_STACK = 200, SMALL_BLIND = 1, BIG_BLIND = 2,
// NUM_ROUNDS = 500.
func Default() Config {
	return Config{
		NumRounds:          500,
		StartingStack:      200,
		SmallBlind:         1,
		BigBlind:           2,
		NumBoards:          3,
		StartingGameClock:  60 * time.Second,
		BuildTimeout:       10 * time.Second,
		ConnectTimeout:     10 * time.Second,
		PlayerLogSizeLimit: 524288,
		EnforceGameClock:   true,
		GameLogFilename:    "gamelog",
		Player1Name:        "player_1",
		Player1Path:        "player_1",
		Player2Name:        "player_2",
		Player2Path:        "player_2",
	}
}

// Load reads overrides from the environment on top of Default and
// validates the result. Any env var left unset keeps the default.
func Load() (Config, error) {
	cfg := Default()

	intVar(&cfg.NumRounds, "NUM_ROUNDS")
	intVar(&cfg.StartingStack, "STARTING_STACK")
	intVar(&cfg.SmallBlind, "SMALL_BLIND")
	intVar(&cfg.BigBlind, "BIG_BLIND")
	intVar(&cfg.NumBoards, "NUM_BOARDS")
	intVar(&cfg.PlayerLogSizeLimit, "PLAYER_LOG_SIZE_LIMIT")
	durationVar(&cfg.StartingGameClock, "STARTING_GAME_CLOCK_SECONDS")
	durationVar(&cfg.BuildTimeout, "BUILD_TIMEOUT_SECONDS")
	durationVar(&cfg.ConnectTimeout, "CONNECT_TIMEOUT_SECONDS")
	boolVar(&cfg.EnforceGameClock, "ENFORCE_GAME_CLOCK")
	stringVar(&cfg.GameLogFilename, "GAME_LOG_FILENAME")
	stringVar(&cfg.Player1Name, "PLAYER_1_NAME")
	stringVar(&cfg.Player1Path, "PLAYER_1_PATH")
	stringVar(&cfg.Player2Name, "PLAYER_2_NAME")
	stringVar(&cfg.Player2Path, "PLAYER_2_PATH")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.NumRounds <= 0:
		return fmt.Errorf("NUM_ROUNDS must be positive, got %d", c.NumRounds)
	case c.NumBoards <= 0:
		return fmt.Errorf("NUM_BOARDS must be positive, got %d", c.NumBoards)
	case c.SmallBlind <= 0 || c.BigBlind <= 0:
		return fmt.Errorf("blinds must be positive, got SB=%d BB=%d", c.SmallBlind, c.BigBlind)
	case c.SmallBlind >= c.BigBlind:
		return fmt.Errorf("SMALL_BLIND (%d) must be less than BIG_BLIND (%d)", c.SmallBlind, c.BigBlind)
	case c.StartingStack < c.NumBoards*c.BigBlind:
		return fmt.Errorf("STARTING_STACK (%d) too small to post blinds on %d boards", c.StartingStack, c.NumBoards)
	case c.PlayerLogSizeLimit <= 0:
		return fmt.Errorf("PLAYER_LOG_SIZE_LIMIT must be positive, got %d", c.PlayerLogSizeLimit)
	case c.Player1Name == "" || c.Player2Name == "" || c.Player1Path == "" || c.Player2Path == "":
		return fmt.Errorf("player names and paths must be set")
	}
	return nil
}

func intVar(dst *int, key string) {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			*dst = v
		}
	}
}

func boolVar(dst *bool, key string) {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			*dst = v
		}
	}
}

func stringVar(dst *string, key string) {
	if raw := os.Getenv(key); raw != "" {
		*dst = raw
	}
}

func durationVar(dst *time.Duration, key string) {
	if raw := os.Getenv(key); raw != "" {
		if secs, err := strconv.ParseFloat(raw, 64); err == nil {
			*dst = time.Duration(secs * float64(time.Second))
		}
	}
}
