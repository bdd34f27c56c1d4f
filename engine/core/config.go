package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"` // RGBA
	TickRate   int        `toml:"tick_rate"`   // fixed updates per second
	LogLevel   string     `toml:"log_level"`   // debug, info, warn or error
	AssetDir   string     `toml:"asset_dir"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "arbor",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]float32{0.08, 0.08, 0.1, 1},
		TickRate:   60,
		LogLevel:   "info",
		AssetDir:   "assets",
	}
}

// LoadConfig reads a TOML file over DefaultConfig. A missing file is not an
// error; the defaults are returned as is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML bytes over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return DefaultConfig(), fmt.Errorf("config: window size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	if cfg.TickRate < 1 {
		cfg.TickRate = 60
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
}

// Level is the parsed LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}
