// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text, json or console.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// BaseURL is the public address of the site, used for share links.
	BaseURL string `koanf:"base_url"`

	// Title is the site title shown in headers and <title>.
	Title string `koanf:"title"`

	// SourceURL is linked from the page footer.
	SourceURL string `koanf:"source_url"`

	// DefaultPlayers is the number of player columns on a new score sheet.
	DefaultPlayers int `koanf:"default_players"`

	// MinPlayers and MaxPlayers bound the player columns of a sheet.
	MinPlayers int `koanf:"min_players"`
	MaxPlayers int `koanf:"max_players"`

	// MaxSheets caps the number of score sheets kept in memory.
	MaxSheets int `koanf:"max_sheets"`

	// SheetTTLSeconds expires sheets that were not touched for this long.
	SheetTTLSeconds int `koanf:"sheet_ttl_seconds"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		BaseURL:         "http://localhost:9080",
		Title:           "Board Game Scores",
		SourceURL:       "https://github.com/okian/boardscore",
		DefaultPlayers:  5,
		MinPlayers:      2,
		MaxPlayers:      5,
		MaxSheets:       10_000,
		SheetTTLSeconds: 12 * 60 * 60,
	}
}

// SheetTTL returns SheetTTLSeconds as a duration.
func (c *Config) SheetTTL() time.Duration {
	return time.Duration(c.SheetTTLSeconds) * time.Second
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinPlayers < 1:
		return fmt.Errorf("%w: min_players must be positive", ErrInvalidConfig)
	case c.MaxPlayers < c.MinPlayers:
		return fmt.Errorf("%w: max_players must be >= min_players", ErrInvalidConfig)
	case c.DefaultPlayers < c.MinPlayers || c.DefaultPlayers > c.MaxPlayers:
		return fmt.Errorf("%w: default_players must be within [min_players, max_players]", ErrInvalidConfig)
	case c.MaxSheets < 1:
		return fmt.Errorf("%w: max_sheets must be positive", ErrInvalidConfig)
	case c.SheetTTLSeconds < 0:
		return fmt.Errorf("%w: sheet_ttl_seconds must not be negative", ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "text", "json", "console":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
