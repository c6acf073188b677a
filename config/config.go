package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the environment-derived settings the service boots with.
type Config struct {
	Port            string
	OpenAIKey       string
	OpenAIModel     string
	ClientURL       string
	WeatherBaseURL  string
	WeatherCacheTTL time.Duration
	Debug           bool
}

const (
	defaultPort       = "8080"
	defaultModel      = "gpt-4o-mini"
	defaultClientURL  = "http://localhost:3000"
	defaultWeatherURL = "https://archive-api.open-meteo.com"
	defaultCacheTTL   = time.Hour
)

// Load reads configuration from the environment. Call it after godotenv has
// populated the process env.
func Load() Config {
	cfg := Config{
		Port:            envOr("PORT", defaultPort),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MODEL", defaultModel),
		ClientURL:       envOr("CLIENT_URL", defaultClientURL),
		WeatherBaseURL:  envOr("WEATHER_URL", defaultWeatherURL),
		WeatherCacheTTL: defaultCacheTTL,
	}
	if raw := os.Getenv("WEATHER_CACHE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			cfg.WeatherCacheTTL = ttl
		}
	}
	if debug, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil {
		cfg.Debug = debug
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
