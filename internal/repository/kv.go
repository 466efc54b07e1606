// Package repository holds the response caches in front of the Riot API.
// Cache failures are logged and reported as misses; they never fail a request.
package repository

import (
	"context"
	"errors"
	"time"

	"lol-tracker/internal/cache"
	"lol-tracker/internal/constants"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Shared reports whether other processes may write the same keys.
	Shared() bool
}

// NewKV picks Redis when a client is configured, otherwise an in-process store.
func NewKV(client *redis.Client, logger zerolog.Logger) KV {
	if client == nil {
		logger.Debug().Msg("using in-memory key/value cache")
		return NewMemoryKV()
	}
	return NewRedisKV(client)
}

type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client, prefix: "loltracker:"}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CacheTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CacheTimeout)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *RedisKV) Shared() bool { return true }

type MemoryKV struct {
	entries *cache.TTL[[]byte]
}

func NewMemoryKV(opts ...cache.Option) *MemoryKV {
	return &MemoryKV{entries: cache.New[[]byte](constants.IdentityCacheTTL, opts...)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.entries.Get(key)
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.entries.SetWithTTL(key, value, ttl)
	return nil
}

func (m *MemoryKV) Shared() bool { return false }
