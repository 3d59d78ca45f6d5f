package config

import "strings"

// LogConfig selects the slog handler and its minimum level.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"` // debug, info, warn, error
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or text
}

// Sanitize lowercases both fields and falls back to info/json on unknown values.
func (c *LogConfig) Sanitize() {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	switch c.Level {
	case "debug", "info", "warn", "error":
	case "warning":
		c.Level = "warn"
	default:
		c.Level = "info"
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != "text" {
		c.Format = "json"
	}
}
