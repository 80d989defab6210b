package services

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
// Both connections are optional and nil when not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.PostgresURL == "" {
		slog.Warn("Postgres URL is not set, searches will not be stored")
	} else {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	}

	if cfg.RedisURL == "" {
		slog.Warn("Redis URL is not set, searches will not be cached")
	} else {
		redis, err := InitRedis(cfg.RedisURL, cfg.RedisTimeout)
		if err != nil {
			return nil, err
		}
		services.Redis = redis
	}

	return services, nil
}

// Close closes all open connections.
func (s *Services) Close() {
	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			slog.Error("Failed to close Postgres connection", "error", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}
}
