package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultSearchDepth  = 6
	DefaultPreset       = "classic"
	MaxSearchDepth      = 10
	DefaultCacheTTL     = 24 * time.Hour
	DefaultRedisTimeout = 2 * time.Second
)

// EngineConfig holds the search settings.
type EngineConfig struct {
	Depth  int
	Preset string
}

// LoadEngineConfig loads the search settings from environment variables.
func LoadEngineConfig() *EngineConfig {
	return &EngineConfig{
		Depth:  getEnvIntRange("FLIPPY_ENGINE_DEPTH", DefaultSearchDepth, 1, MaxSearchDepth),
		Preset: getEnv("FLIPPY_ENGINE_PRESET", DefaultPreset),
	}
}

// ServerConfig holds all configuration values of the analysis server.
type ServerConfig struct {
	ServerHost   string
	ServerPort   string
	RedisURL     string
	RedisTimeout time.Duration
	PostgresURL  string
	Token        string
	Prefork      bool
	CacheTTL     time.Duration
	Engine       EngineConfig
}

// LoadServerConfig loads configuration from environment variables.
// Redis and Postgres are optional, an empty URL disables them.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:   getEnvMust("FLIPPY_SERVER_HOST"),
		ServerPort:   getEnvMust("FLIPPY_SERVER_PORT"),
		RedisURL:     getEnv("FLIPPY_REDIS_URL", ""),
		RedisTimeout: time.Duration(getEnvIntRange("FLIPPY_REDIS_TIMEOUT_MS", int(DefaultRedisTimeout/time.Millisecond), 1, 60_000)) * time.Millisecond,
		PostgresURL:  getEnv("FLIPPY_POSTGRES_URL", ""),
		Token:        getEnv("FLIPPY_SERVER_TOKEN", ""),
		Prefork:      getEnvBool("FLIPPY_SERVER_PREFORK", false),
		CacheTTL:     time.Duration(getEnvIntRange("FLIPPY_CACHE_TTL_SECONDS", int(DefaultCacheTTL/time.Second), 1, 1<<31-1)) * time.Second,
		Engine:       *LoadEngineConfig(),
	}
}

// ClientConfig holds the settings for talking to an analysis server.
type ClientConfig struct {
	ServerURL string
	Token     string
}

// LoadClientConfig loads the client settings from environment variables.
// An empty ServerURL means no server is used.
func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: getEnv("FLIPPY_SERVER_URL", ""),
		Token:     getEnv("FLIPPY_SERVER_TOKEN", ""),
	}
}

// LoadDotEnv loads variables from a .env file in the working directory, if there is one.
// Variables already set in the environment take precedence.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

// getEnv returns the environment variable or fallback if it is not set.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

func getEnvIntRange(key string, fallback, low, high int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < low || parsed > high {
		slog.Error("Cannot load environment variable, it must be an integer in range", "key", key, "value", value, "min", low, "max", high)
		os.Exit(1)
	}

	return parsed
}
