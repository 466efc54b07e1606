package repository

import (
	"context"
	"strings"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/riot"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// AccountRepository caches riot-id to account lookups. Riot ids are case-insensitive.
type AccountRepository struct {
	kv     KV
	ttl    time.Duration
	logger zerolog.Logger
}

func NewAccountRepository(kv KV, cfg *config.Config, logger zerolog.Logger) *AccountRepository {
	ttl := cfg.IdentityCacheTTL
	if ttl <= 0 {
		ttl = constants.IdentityCacheTTL
	}
	return &AccountRepository{
		kv:     kv,
		ttl:    ttl,
		logger: logger.With().Str("component", "account_repository").Logger(),
	}
}

func accountKey(routing, gameName, tagLine string) string {
	return "account:" + routing + ":" + strings.ToLower(gameName) + "#" + strings.ToLower(tagLine)
}

func (r *AccountRepository) GetByRiotID(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, bool) {
	data, ok, err := r.kv.Get(ctx, accountKey(routing, gameName, tagLine))
	if err != nil {
		r.logger.Warn().Err(err).Str("routing", routing).Msg("account cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var acc riot.Account
	if err := json.Unmarshal(data, &acc); err != nil || acc.Puuid == "" {
		return nil, false
	}
	return &acc, true
}

func (r *AccountRepository) Put(ctx context.Context, routing, gameName, tagLine string, acc *riot.Account) {
	data, err := json.Marshal(acc)
	if err != nil {
		return
	}
	if err := r.kv.Set(ctx, accountKey(routing, gameName, tagLine), data, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("puuid", acc.Puuid).Msg("account cache write failed")
	}
}
