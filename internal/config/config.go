// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid is wrapped by every malformed setting.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Port string
	// DatabaseURL selects Postgres session storage; empty keeps sessions in
	// memory.
	DatabaseURL     string
	AIServiceURL    string
	AITimeout       time.Duration
	ChromePath      string
	DefaultLanguage string
	LogLevel        slog.Level
	RenderAttempts  int
}

func defaults() Config {
	return Config{
		Port:            "3000",
		AIServiceURL:    "http://ai-service:8000",
		AITimeout:       60 * time.Second,
		DefaultLanguage: "English",
		LogLevel:        slog.LevelInfo,
		RenderAttempts:  3,
	}
}

// Load reads the given .env files (default ".env") when they exist, then
// builds a Config from the environment. Variables already set in the
// environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, which has the signature of
// os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := defaults()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := get("DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := get("AI_SERVICE_URL"); ok {
		cfg.AIServiceURL = v
	}
	if v, ok := get("CHROME_PATH"); ok {
		cfg.ChromePath = v
	}
	if v, ok := get("DEFAULT_LANGUAGE"); ok {
		cfg.DefaultLanguage = v
	}
	if v, ok := get("AI_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: AI_TIMEOUT=%q", ErrInvalid, v)
		}
		cfg.AITimeout = d
	}
	if v, ok := get("LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("%w: LOG_LEVEL=%q", ErrInvalid, v)
		}
	}
	if v, ok := get("RENDER_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%w: RENDER_ATTEMPTS=%q", ErrInvalid, v)
		}
		cfg.RenderAttempts = n
	}
	return cfg, nil
}
