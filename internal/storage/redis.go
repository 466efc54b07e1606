// Package storage opens the optional shared Redis cache.
package storage

import (
	"context"
	"fmt"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// NewRedis returns nil without error when REDIS_URL is unset; callers fall back to in-process caches.
func NewRedis(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("REDIS_URL not set, using in-memory caches")
		return nil, nil
	}

	client, err := Open(context.Background(), cfg.RedisURL, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := client.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing redis connection")
				return err
			}
			return nil
		},
	})
	return client, nil
}

func Open(ctx context.Context, url string, logger zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse REDIS_URL")
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	opt.PoolSize = constants.RedisPoolSize
	opt.MinIdleConns = constants.RedisMinIdleConns
	opt.DialTimeout = constants.RedisDialTimeout
	opt.ReadTimeout = constants.RedisIOTimeout
	opt.WriteTimeout = constants.RedisIOTimeout

	logger.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("connecting to redis")

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, constants.RedisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.Error().Err(err).Msg("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Msg("redis connection established")
	return client, nil
}
