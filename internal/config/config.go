// README: Config loader; reads an optional .env file, then env vars with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultLogMaxSizeMB  = 5
	DefaultLogMaxBackups = 3
)

// Logging holds the console/file toggles that used to live in a mutable .env file,
// plus the rotation limits of the file log.
type Logging struct {
	Console    bool
	File       bool
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	Quota struct {
		DailyPlans int
	}
	AI struct {
		Provider  string
		GeminiKey string
		OpenAIKey string
		Model     string
		Timeout   time.Duration
	}
	Maps struct {
		APIKey string
	}
	Decode struct {
		Repair   bool
		MaxDepth int
	}
	Logging Logging
}

// Load reads WANDER_ENV_FILE (default ".env") if it exists, then the environment.
// Variables already set in the environment take precedence over the file.
func Load() (Config, error) {
	envFile := envOrDefault("WANDER_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WANDER_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = os.Getenv("WANDER_REDIS_ADDR")
	cfg.Quota.DailyPlans = envOrDefaultInt("WANDER_QUOTA_DAILY", 20)

	cfg.AI.Provider = strings.ToLower(envOrDefault("WANDER_AI_PROVIDER", ProviderGemini))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.Model = os.Getenv("WANDER_AI_MODEL")
	cfg.AI.Timeout = time.Duration(envOrDefaultInt("WANDER_AI_TIMEOUT_SECONDS", 120)) * time.Second

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	cfg.Decode.Repair = envOrDefaultBool("WANDER_DECODE_REPAIR", false)
	cfg.Decode.MaxDepth = envOrDefaultInt("WANDER_DECODE_MAX_DEPTH", 512)

	cfg.Logging.Console = envOrDefaultBool("ENABLE_CONSOLE_LOGGING", true)
	cfg.Logging.File = envOrDefaultBool("ENABLE_FILE_LOGGING", false)
	cfg.Logging.Dir = envOrDefault("WANDER_LOG_DIR", "logs")
	cfg.Logging.MaxSizeMB = envOrDefaultInt("WANDER_LOG_MAX_SIZE_MB", DefaultLogMaxSizeMB)
	cfg.Logging.MaxBackups = envOrDefaultInt("WANDER_LOG_MAX_BACKUPS", DefaultLogMaxBackups)

	switch cfg.AI.Provider {
	case ProviderGemini:
		if cfg.AI.GeminiKey == "" {
			return Config{}, errors.New("environment variable GEMINI_API_KEY is required")
		}
	case ProviderOpenAI:
		if cfg.AI.OpenAIKey == "" {
			return Config{}, errors.New("environment variable OPENAI_API_KEY is required")
		}
	default:
		return Config{}, fmt.Errorf("unknown WANDER_AI_PROVIDER %q", cfg.AI.Provider)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}
