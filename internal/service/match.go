package service

import (
	"context"
	"fmt"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/fetcher"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/routing"

	"github.com/rs/zerolog"
)

type MatchService struct {
	riot    Riot
	cache   MatchCache
	fetcher *fetcher.Fetcher
	routes  *routing.Table
	logger  zerolog.Logger
}

func NewMatchService(riot Riot, cache MatchCache, fetcher *fetcher.Fetcher, routes *routing.Table, logger zerolog.Logger) *MatchService {
	return &MatchService{riot: riot, cache: cache, fetcher: fetcher, routes: routes, logger: logger}
}

func (s *MatchService) GetMatch(ctx context.Context, region, matchID string) (*riot.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()
	return s.fetch(ctx, s.routes.Resolve(region), matchID)
}

// GetTimeline fetches the per-minute frames and events of a match. Timelines are not cached.
func (s *MatchService) GetTimeline(ctx context.Context, region, matchID string) (*riot.Timeline, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	route := s.routes.Resolve(region)
	tl, err := s.riot.MatchTimeline(ctx, route, matchID)
	if err != nil {
		s.logger.Warn().Err(err).Str("match_id", matchID).Str("routing", route).Msg("failed to fetch timeline")
		return nil, err
	}
	return tl, nil
}

// GetMatchHistory lists a page of match ids and fetches their bodies. A partial page is not an error.
func (s *MatchService) GetMatchHistory(ctx context.Context, region, puuid string, q riot.MatchIDsQuery) (*domain.MatchBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if q.Count <= 0 {
		q.Count = constants.DefaultHistoryCount
	}
	if q.Count > constants.MatchHistoryMaxCount {
		q.Count = constants.MatchHistoryMaxCount
	}
	if q.Start < 0 {
		q.Start = 0
	}

	route := s.routes.Resolve(region)
	ids, err := s.riot.MatchIDsByPUUID(ctx, route, puuid, q)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Str("routing", route).Msg("failed to list match ids")
		return nil, fmt.Errorf("failed to list match ids: %w", err)
	}

	batch := s.FetchAll(ctx, route, ids)
	s.logger.Info().
		Str("puuid", puuid).
		Int("requested", batch.Total).
		Int("fetched", len(batch.Items)).
		Bool("rate_limited", batch.RateLimited).
		Msg("match history fetched")

	return &domain.MatchBatch{
		Matches:     batch.Items,
		Total:       batch.Total,
		RateLimited: batch.RateLimited,
	}, nil
}

// FetchAll fetches match bodies in the order given, serving cached ones without an upstream call.
func (s *MatchService) FetchAll(ctx context.Context, route string, ids []string) fetcher.Batch[*riot.Match] {
	return fetcher.FetchThrough(ctx, s.fetcher, ids, s.cache.Get, func(ctx context.Context, id string) (*riot.Match, error) {
		return s.fetchUpstream(ctx, route, id)
	})
}

func (s *MatchService) fetch(ctx context.Context, route, matchID string) (*riot.Match, error) {
	if m, ok := s.cache.Get(ctx, matchID); ok {
		return m, nil
	}
	return s.fetchUpstream(ctx, route, matchID)
}

func (s *MatchService) fetchUpstream(ctx context.Context, route, matchID string) (*riot.Match, error) {
	m, err := s.riot.Match(ctx, route, matchID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, m)
	return m, nil
}
