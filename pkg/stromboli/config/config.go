// Package config loads and validates the TOML configuration for a
// stromboli shell: logging, input device, navigation, audio, and asset
// cache settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Config is the top-level TOML structure.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Input      InputConfig      `toml:"input"`
	Navigation NavigationConfig `toml:"navigation"`
	Audio      AudioConfig      `toml:"audio"`
	Cache      CacheConfig      `toml:"cache"`
}

// LogConfig controls log output.
type LogConfig struct {
	Path  string `toml:"path"`  // log file path; empty means stdout only
	Level string `toml:"level"` // debug, info, warn, error
}

// InputConfig selects the keyboard device.
type InputConfig struct {
	DevicePath     string `toml:"device_path"`     // e.g. /dev/input/event1
	RepeatDelayMs  int    `toml:"repeat_delay_ms"` // hold time before repeat starts
	RepeatRateMs   int    `toml:"repeat_rate_ms"`  // interval between repeats
	CaptureEnabled bool   `toml:"capture_enabled"` // start with the listener enabled
}

// NavigationConfig tunes the navigator.
type NavigationConfig struct {
	FallbackDomain string `toml:"fallback_domain"` // recovery domain id
	GridColumns    int    `toml:"grid_columns"`    // default grid column count
}

// AudioConfig controls sound effects and ambience.
type AudioConfig struct {
	Enabled          bool    `toml:"enabled"`
	Volume           float64 `toml:"volume"`            // 0.0 to 1.0
	CrossfadeSeconds float64 `toml:"crossfade_seconds"` // ambience transition length
}

// CacheConfig controls the downloaded asset cache.
type CacheConfig struct {
	Dir string `toml:"dir"` // cache root; empty means a per-user default
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Input: InputConfig{
			DevicePath:    "/dev/input/event1",
			RepeatDelayMs: 300,
			RepeatRateMs:  50,
		},
		Navigation: NavigationConfig{
			FallbackDomain: "osbar-nav",
			GridColumns:    3,
		},
		Audio: AudioConfig{
			Enabled:          true,
			Volume:           0.8,
			CrossfadeSeconds: 1.5,
		},
	}
}

// Load reads the TOML file at path, filling unset fields from Default.
// A missing file is not an error: defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: must be debug, info, warn, or error", c.Log.Level)
	}
	if c.Input.RepeatDelayMs <= 0 {
		return fmt.Errorf("input.repeat_delay_ms %d: must be positive", c.Input.RepeatDelayMs)
	}
	if c.Input.RepeatRateMs <= 0 {
		return fmt.Errorf("input.repeat_rate_ms %d: must be positive", c.Input.RepeatRateMs)
	}
	if c.Navigation.FallbackDomain == "" {
		return fmt.Errorf("navigation.fallback_domain: must not be empty")
	}
	if c.Navigation.GridColumns <= 0 {
		return fmt.Errorf("navigation.grid_columns %d: must be positive", c.Navigation.GridColumns)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume %v: must be between 0 and 1", c.Audio.Volume)
	}
	if c.Audio.CrossfadeSeconds < 0 {
		return fmt.Errorf("audio.crossfade_seconds %v: must not be negative", c.Audio.CrossfadeSeconds)
	}
	return nil
}

// CacheDir resolves the asset cache root, defaulting to a stromboli
// subdirectory of the user cache dir.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("user cache dir: %w", err)
	}
	return filepath.Join(dir, "stromboli"), nil
}
