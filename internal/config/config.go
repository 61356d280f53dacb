// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config is the full set of runtime settings.
type Config struct {
	HTTPAddr  string
	LogLevel  slog.Level
	LogFormat string // json|text
	// Currency is the single currency all balances are kept in.
	Currency       string
	CredentialCost int
	SessionTTL     time.Duration
	DevSeed        bool

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		HTTPAddr:          ":8080",
		LogLevel:          slog.LevelInfo,
		LogFormat:         "json",
		Currency:          "USD",
		CredentialCost:    bcrypt.DefaultCost,
		SessionTTL:        30 * time.Minute,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// FromEnv loads settings from the process environment.
func FromEnv() (Config, error) { return Load(os.Getenv) }

// Load builds a Config using getenv for lookups; unset values keep their defaults.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	if v := get("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	cfg.LogLevel = parseLogLevel(get("LOG_LEVEL"))
	if v := strings.ToLower(get("LOG_FORMAT")); v == "text" {
		cfg.LogFormat = "text"
	}
	if v := get("LEDGER_CURRENCY"); v != "" {
		cfg.Currency = strings.ToUpper(v)
	}
	if v := get("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < bcrypt.MinCost || n > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("BCRYPT_COST: must be an integer in [%d,%d]", bcrypt.MinCost, bcrypt.MaxCost)
		}
		cfg.CredentialCost = n
	}
	if v := get("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL: invalid duration %q", v)
		}
		cfg.SessionTTL = d
	}
	switch strings.ToLower(get("DEV_SEED")) {
	case "1", "true", "yes":
		cfg.DevSeed = true
	}
	return cfg, nil
}

// parseLogLevel maps env values to slog levels
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
