package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds process settings read from the environment.
type Config struct {
	LogLevel    string
	WeightsPath string

	HTTPHost       string
	HTTPPort       int
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env when present and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Trace().Msg("no .env file found, using process environment")
	}

	return &Config{
		LogLevel:    getEnv("PROPSCORE_LOG_LEVEL", "info"),
		WeightsPath: getEnv("PROPSCORE_WEIGHTS", ""),

		HTTPHost:       getEnv("PROPSCORE_HTTP_HOST", "127.0.0.1"),
		HTTPPort:       getEnvInt("PROPSCORE_HTTP_PORT", 8080),
		RateLimitRPS:   getEnvFloat("PROPSCORE_RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("PROPSCORE_RATE_LIMIT_BURST", 40),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", val).Msg("ignoring non-integer env value")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", val).Msg("ignoring non-numeric env value")
	}
	return fallback
}
