package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type LeaderboardService struct {
	riot   Riot
	cache  LeagueCache
	logger zerolog.Logger
}

func NewLeaderboardService(riot Riot, cache LeagueCache, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{riot: riot, cache: cache, logger: logger}
}

func normalizeQueue(queue string) string {
	if queue == "" {
		return constants.RankedSoloQueue
	}
	return queue
}

// League returns the challenger, grandmaster or master league of a queue.
func (s *LeaderboardService) League(ctx context.Context, region, tier, queue string) (*riot.LeagueList, error) {
	if !riot.IsApexTier(tier) {
		return nil, riot.InvalidRequest(fmt.Errorf("unknown tier %q", tier))
	}
	tier = strings.ToLower(tier)
	queue = normalizeQueue(queue)

	if list, ok := s.cache.Get(ctx, region, tier, queue); ok {
		return list, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.UpstreamTimeout)
	defer cancel()

	list, err := s.riot.ApexLeague(ctx, region, tier, queue)
	if err != nil {
		s.logger.Warn().Err(err).Str("region", region).Str("tier", tier).Str("queue", queue).Msg("failed to fetch league")
		return nil, err
	}
	s.cache.Put(ctx, region, tier, queue, list)
	return list, nil
}

// Ranking merges challenger and grandmaster into one ladder ordered by LP. One league failing
// leaves the other; both failing is an error.
func (s *LeaderboardService) Ranking(ctx context.Context, region, queue string) (*domain.Ranking, error) {
	queue = normalizeQueue(queue)
	tiers := []string{riot.TierChallenger, riot.TierGrandmaster}
	lists := make([]*riot.LeagueList, len(tiers))
	errs := make([]error, len(tiers))

	var g errgroup.Group
	for i, tier := range tiers {
		g.Go(func() error {
			lists[i], errs[i] = s.League(ctx, region, tier, queue)
			return nil
		})
	}
	_ = g.Wait()

	ranking := &domain.Ranking{
		Region:  region,
		Queue:   queue,
		Entries: []domain.LadderEntry{},
		Cutoffs: make(map[string]int),
	}

	failed := 0
	for i, list := range lists {
		if errs[i] != nil {
			failed++
			continue
		}
		tier := strings.ToUpper(tiers[i])
		if list.Tier != "" {
			tier = list.Tier
		}
		for j, e := range list.Entries {
			if j == 0 || e.LeaguePoints < ranking.Cutoffs[tier] {
				ranking.Cutoffs[tier] = e.LeaguePoints
			}
			ranking.Entries = append(ranking.Entries, domain.LadderEntry{
				Puuid:        e.Puuid,
				SummonerID:   e.SummonerID,
				Tier:         tier,
				LeaguePoints: e.LeaguePoints,
				Wins:         e.Wins,
				Losses:       e.Losses,
				WinRate:      stats.WinRate(e.Wins, e.Wins+e.Losses),
				HotStreak:    e.HotStreak,
			})
		}
	}
	if failed == len(tiers) {
		return nil, fmt.Errorf("ranking unavailable: %w", errs[0])
	}

	sort.SliceStable(ranking.Entries, func(i, j int) bool {
		return ranking.Entries[i].LeaguePoints > ranking.Entries[j].LeaguePoints
	})
	if len(ranking.Entries) > constants.RankingLimit {
		ranking.Entries = ranking.Entries[:constants.RankingLimit]
	}
	for i := range ranking.Entries {
		ranking.Entries[i].Position = i + 1
	}
	return ranking, nil
}
