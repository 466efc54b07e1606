package repository

import (
	"context"
	"sync"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/riot"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// MatchRepository caches match bodies by id. Matches never change once played.
type MatchRepository struct {
	kv     KV
	ttl    time.Duration
	logger zerolog.Logger

	seenMu sync.Mutex
	seen   *bloom.BloomFilter
}

func NewMatchRepository(kv KV, cfg *config.Config, logger zerolog.Logger) *MatchRepository {
	ttl := cfg.MatchCacheTTL
	if ttl <= 0 {
		ttl = constants.MatchCacheTTL
	}
	return &MatchRepository{
		kv:     kv,
		ttl:    ttl,
		logger: logger.With().Str("component", "match_repository").Logger(),
		seen:   bloom.NewWithEstimates(constants.MatchFilterCapacity, constants.MatchFilterFPRate),
	}
}

func matchKey(matchID string) string {
	return "match:" + matchID
}

// Get returns the cached match or (nil, false). With a process-local store, ids never stored
// here are answered from the bloom filter without touching the store.
func (r *MatchRepository) Get(ctx context.Context, matchID string) (*riot.Match, bool) {
	if !r.kv.Shared() && !r.mightContain(matchID) {
		return nil, false
	}

	data, ok, err := r.kv.Get(ctx, matchKey(matchID))
	if err != nil {
		r.logger.Warn().Err(err).Str("match_id", matchID).Msg("match cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var match riot.Match
	if err := json.Unmarshal(data, &match); err != nil {
		r.logger.Warn().Err(err).Str("match_id", matchID).Msg("corrupt cached match")
		return nil, false
	}
	r.markSeen(matchID)
	return &match, true
}

func (r *MatchRepository) Put(ctx context.Context, match *riot.Match) {
	id := match.Metadata.MatchID
	data, err := json.Marshal(match)
	if err != nil {
		r.logger.Warn().Err(err).Str("match_id", id).Msg("failed to encode match")
		return
	}
	if err := r.kv.Set(ctx, matchKey(id), data, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("match_id", id).Msg("match cache write failed")
		return
	}
	r.markSeen(id)
}

func (r *MatchRepository) mightContain(matchID string) bool {
	r.seenMu.Lock()
	defer r.seenMu.Unlock()
	return r.seen.TestString(matchID)
}

func (r *MatchRepository) markSeen(matchID string) {
	r.seenMu.Lock()
	r.seen.AddString(matchID)
	r.seenMu.Unlock()
}
