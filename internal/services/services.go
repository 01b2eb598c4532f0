package services

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
// A connection is nil when its URL is not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.PostgresURL == "" {
		slog.Info("Postgres URL is not set, search reports are disabled")
	} else {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	}

	if cfg.RedisURL == "" {
		slog.Info("Redis URL is not set, search stats are disabled")
	} else {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			services.Close()
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
			slog.Warn("Error closing Postgres connection", "error", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Warn("Error closing Redis connection", "error", err)
		}
	}
}
