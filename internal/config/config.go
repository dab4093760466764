package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/benbeisheim/chessboard-backend/internal/animate"
	"github.com/benbeisheim/chessboard-backend/internal/model"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

const envPrefix = "CHESSBOARD_"

type Config struct {
	Addr          string
	AllowOrigins  string
	TileSize      int
	FrameInterval time.Duration
	EnforceTurn   bool
	Debug         bool
	NoColor       bool
}

func Default() Config {
	return Config{
		Addr:          ":3000",
		AllowOrigins:  "http://localhost:5173",
		TileSize:      model.DefaultTileSize,
		FrameInterval: animate.DefaultFrameInterval,
	}
}

// Load reads flags from args, falling back to CHESSBOARD_* variables from
// getenv and then to the defaults. Flags win over the environment.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.IntVar(&cfg.TileSize, "tile", cfg.TileSize, "rendered square size used for move animation offsets")
	fs.DurationVar(&cfg.FrameInterval, "frame", cfg.FrameInterval, "animation frame interval")
	fs.BoolVar(&cfg.EnforceTurn, "enforce-turn", cfg.EnforceTurn, "only allow selecting pieces of the side to move")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log requests and draw the board after every move")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colours in board drawings")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %s", ErrInvalidConfig, c.FrameInterval)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	if v := getenv(envPrefix + "ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv(envPrefix + "ORIGINS"); v != "" {
		cfg.AllowOrigins = v
	}
	if v := getenv(envPrefix + "TILE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sTILE: %v", ErrInvalidConfig, envPrefix, err)
		}
		cfg.TileSize = n
	}
	if v := getenv(envPrefix + "FRAME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sFRAME: %v", ErrInvalidConfig, envPrefix, err)
		}
		cfg.FrameInterval = d
	}
	for name, dst := range map[string]*bool{
		"ENFORCE_TURN": &cfg.EnforceTurn,
		"DEBUG":        &cfg.Debug,
		"NO_COLOR":     &cfg.NoColor,
	} {
		v := getenv(envPrefix + name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, name, err)
		}
		*dst = b
	}
	return nil
}
