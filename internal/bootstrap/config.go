package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/batisuivi/batisuivi/config"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// InitLogger installs a JSON logger at info level. It is used until the
// configuration is loaded; ConfigureLogger replaces it afterwards.
func InitLogger() *slog.Logger {
	return ConfigureLogger(os.Stdout, config.LogConfig{Level: "info", Format: "json"})
}

// ConfigureLogger builds the process logger from cfg and makes it the slog default.
func ConfigureLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler).With(slog.String("app", "batisuivi"))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig reads an optional .env file, parses the environment and sanitizes the result.
func LoadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg, err := env.ParseAs[config.AppConfig]()
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}
