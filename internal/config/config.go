package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

type Config struct {
	Port string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	DatabaseURL string

	SessionSecret   string
	SessionTTL      time.Duration
	SessionCapacity int

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup, so tests don't touch the
// real environment.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:          valueOr(getenv("PORT"), "8080"),
		OpenAIKey:     strings.TrimSpace(getenv("OPENAI_API_KEY")),
		OpenAIModel:   valueOr(getenv("OPENAI_MODEL"), openai.GPT3Dot5Turbo),
		OpenAIBaseURL: strings.TrimSpace(getenv("OPENAI_BASE_URL")),
		DatabaseURL:   strings.TrimSpace(getenv("DATABASE_URL")),
		SessionSecret: getenv("SESSION_SECRET"),
		LogLevel:      valueOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:     valueOr(getenv("LOG_FORMAT"), "json"),
	}

	if cfg.OpenAIKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	ttl, err := time.ParseDuration(valueOr(getenv("SESSION_TTL"), "2h"))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	capacity, err := strconv.Atoi(valueOr(getenv("SESSION_CAPACITY"), "1024"))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_CAPACITY: %w", err)
	}
	if capacity <= 0 {
		return Config{}, fmt.Errorf("SESSION_CAPACITY must be positive, got %d", capacity)
	}
	cfg.SessionCapacity = capacity

	return cfg, nil
}

func valueOr(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
