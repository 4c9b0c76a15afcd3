// Package logging centralizes slog setup so every process logs the same
// shape: one line per event, tagged with the app and the command that wrote
// it.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvFormat selects the handler: json (default) or text.
	EnvFormat = "LOG_FORMAT"
	// EnvLevel sets the minimum severity: debug, info (default), warn, error.
	EnvLevel = "LOG_LEVEL"
)

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config is the validated logging configuration.
type Config struct {
	Format string
	Level  slog.Level
}

// BootstrapOptions controls logger initialization behavior.
type BootstrapOptions struct {
	Command string
	Writer  io.Writer
}

func DefaultConfig() Config {
	return Config{Format: "json", Level: slog.LevelInfo}
}

// LoadConfigFromEnv parses and validates the logging environment variables.
// Unset variables fall back to the defaults; bad values are an error so a
// typo does not silently change what gets logged.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if format := normalizeEnvValue(EnvFormat); format != "" {
		if format != "json" && format != "text" {
			return Config{}, fmt.Errorf("%s must be one of: json, text", EnvFormat)
		}
		cfg.Format = format
	}

	if name := normalizeEnvValue(EnvLevel); name != "" {
		level, ok := levelNames[name]
		if !ok {
			return Config{}, fmt.Errorf("%s must be one of: debug, info, warn, error", EnvLevel)
		}
		cfg.Level = level
	}

	return cfg, nil
}

// NewLogger builds a logger carrying the static app and command attributes.
func NewLogger(cfg Config, writer io.Writer, command string) *slog.Logger {
	if writer == nil {
		writer = os.Stdout
	}
	if command = strings.TrimSpace(command); command == "" {
		command = "assetdesk"
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "text") {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler).With("app", "assetdesk", "command", command)
}

// BootstrapFromEnv loads the config, installs the logger as the slog default
// and returns it.
func BootstrapFromEnv(opts BootstrapOptions) (*slog.Logger, error) {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, opts.Writer, opts.Command)
	slog.SetDefault(logger)
	return logger, nil
}

func normalizeEnvValue(key string) string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(key)))
}
