package repository

import (
	"context"
	"fmt"
	"strings"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/riot"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// LeagueRepository keeps short-lived snapshots of apex leagues, which are large and shared by every caller.
type LeagueRepository struct {
	kv     KV
	logger zerolog.Logger
}

func NewLeagueRepository(kv KV, logger zerolog.Logger) *LeagueRepository {
	return &LeagueRepository{
		kv:     kv,
		logger: logger.With().Str("component", "league_repository").Logger(),
	}
}

func leagueKey(region, tier, queue string) string {
	return fmt.Sprintf("league:%s:%s:%s", strings.ToLower(region), strings.ToLower(tier), queue)
}

func (r *LeagueRepository) Get(ctx context.Context, region, tier, queue string) (*riot.LeagueList, bool) {
	data, ok, err := r.kv.Get(ctx, leagueKey(region, tier, queue))
	if err != nil {
		r.logger.Warn().Err(err).Str("region", region).Str("tier", tier).Msg("league cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var list riot.LeagueList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false
	}
	return &list, true
}

func (r *LeagueRepository) Put(ctx context.Context, region, tier, queue string, list *riot.LeagueList) {
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := r.kv.Set(ctx, leagueKey(region, tier, queue), data, constants.LeagueCacheTTL); err != nil {
		r.logger.Warn().Err(err).Str("region", region).Str("tier", tier).Msg("league cache write failed")
	}
}
