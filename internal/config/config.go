// README: Config loader with env defaults for HTTP, providers, and planner settings.
package config

import (
	"os"
	"strconv"
)

type PlannerConfig struct {
	// MaxAttempts bounds the generate→normalize retry loop.
	MaxAttempts int
	// PromptPlaces caps how many places are rendered into the prompt.
	PromptPlaces int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	AI struct {
		GeminiKey string
	}
	Planner PlannerConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WANDER_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("WANDER_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("WANDER_REDIS_ADDR", "")
	cfg.Planner.MaxAttempts = envOrDefaultInt("WANDER_PLAN_ATTEMPTS", 2)
	cfg.Planner.PromptPlaces = envOrDefaultInt("WANDER_PROMPT_PLACES", 20)
	cfg.Maps.APIKey = envOrError("GOOGLE_MAPS_API_KEY")
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
