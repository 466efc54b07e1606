package storage

import (
	"context"
	"testing"

	"lol-tracker/internal/config"

	"github.com/rs/zerolog"
	"go.uber.org/fx/fxtest"
)

func TestNewRedis_DisabledWithoutURL(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	client, err := NewRedis(lc, &config.Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Error("expected nil client when REDIS_URL is empty")
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	if _, err := Open(context.Background(), "not-a-redis-url", zerolog.Nop()); err == nil {
		t.Error("expected error for malformed url")
	}
}
