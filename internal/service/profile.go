package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/ddragon"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/fetcher"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/routing"
	"lol-tracker/internal/stats"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ProfileService assembles a summoner profile from the account, summoner, ranked, mastery and match endpoints.
// Only the account and summoner lookups are mandatory; every other section degrades to empty.
type ProfileService struct {
	riot       Riot
	static     StaticData
	accounts   AccountCache
	matches    *MatchService
	routes     *routing.Table
	matchCount int
	logger     zerolog.Logger
}

func NewProfileService(
	riot Riot,
	static StaticData,
	accounts AccountCache,
	matches *MatchService,
	routes *routing.Table,
	cfg *config.Config,
	logger zerolog.Logger,
) *ProfileService {
	count := cfg.ProfileMatchCount
	if count <= 0 {
		count = constants.ProfileMatchCount
	}
	return &ProfileService{
		riot:       riot,
		static:     static,
		accounts:   accounts,
		matches:    matches,
		routes:     routes,
		matchCount: count,
		logger:     logger,
	}
}

func (s *ProfileService) Load(ctx context.Context, region, gameName, tagLine string) (*domain.ProfileSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	gameName = strings.TrimSpace(gameName)
	tagLine = strings.TrimPrefix(strings.TrimSpace(tagLine), "#")
	if gameName == "" || tagLine == "" {
		return nil, riot.InvalidRequest(fmt.Errorf("game name and tag line are required"))
	}

	route := s.routes.Resolve(region)
	logger := s.loadLogger(region, route)
	logger.Info().Str("game_name", gameName).Str("tag_line", tagLine).Msg("loading profile")

	acc, ok := s.accounts.GetByRiotID(ctx, route, gameName, tagLine)
	if ok {
		logger.Debug().Str("puuid", acc.Puuid).Msg("account served from cache")
	} else {
		var err error
		acc, err = s.riot.AccountByRiotID(ctx, route, gameName, tagLine)
		if err != nil {
			logger.Warn().Err(err).Int("status", riot.StatusOf(err)).Msg("account lookup failed")
			return nil, fmt.Errorf("account lookup: %w", err)
		}
		s.accounts.Put(ctx, route, gameName, tagLine, acc)
	}

	return s.assemble(ctx, logger, region, route, acc)
}

func (s *ProfileService) LoadByPUUID(ctx context.Context, region, puuid string) (*domain.ProfileSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if strings.TrimSpace(puuid) == "" {
		return nil, riot.InvalidRequest(fmt.Errorf("puuid is required"))
	}

	route := s.routes.Resolve(region)
	logger := s.loadLogger(region, route)
	logger.Info().Str("puuid", puuid).Msg("loading profile by puuid")

	acc, err := s.riot.AccountByPUUID(ctx, route, puuid)
	if err != nil {
		logger.Warn().Err(err).Int("status", riot.StatusOf(err)).Msg("account lookup failed")
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	return s.assemble(ctx, logger, region, route, acc)
}

func (s *ProfileService) loadLogger(region, route string) zerolog.Logger {
	loadID, err := gonanoid.New(10)
	if err != nil {
		loadID = "unknown"
	}
	return s.logger.With().
		Str("load_id", loadID).
		Str("region", region).
		Str("routing", route).
		Logger()
}

func (s *ProfileService) assemble(ctx context.Context, logger zerolog.Logger, region, route string, acc *riot.Account) (*domain.ProfileSummary, error) {
	logger = logger.With().Str("puuid", acc.Puuid).Logger()
	start := time.Now()

	var (
		summoner  *riot.Summoner
		entries   []riot.LeagueEntry
		masteries []riot.ChampionMastery
		batch     fetcher.Batch[*riot.Match]
		catalog   *ddragon.Catalog
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summoner, err = s.riot.SummonerByPUUID(gCtx, region, acc.Puuid)
		if err != nil {
			logger.Warn().Err(err).Int("status", riot.StatusOf(err)).Msg("summoner lookup failed")
			return fmt.Errorf("summoner lookup: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		entries, err = s.riot.LeagueEntriesByPUUID(gCtx, region, acc.Puuid)
		if err != nil {
			logger.Warn().Err(err).Msg("ranked entries unavailable")
			entries = nil
		}
		return nil
	})

	g.Go(func() error {
		var err error
		masteries, err = s.riot.ChampionMasteries(gCtx, region, acc.Puuid, constants.MasteryFetchCount)
		if err != nil {
			logger.Warn().Err(err).Msg("champion mastery unavailable")
			masteries = nil
		}
		return nil
	})

	g.Go(func() error {
		ids, err := s.riot.MatchIDsByPUUID(gCtx, route, acc.Puuid, riot.MatchIDsQuery{Count: s.matchCount})
		if err != nil {
			logger.Warn().Err(err).Msg("match history unavailable")
			return nil
		}
		batch = s.matches.FetchAll(gCtx, route, ids)
		return nil
	})

	g.Go(func() error {
		catalog = s.static.Catalog(gCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggs := stats.Fold(batch.Items, acc.Puuid)
	perf := stats.Analyze(batch.Items, acc.Puuid)

	summary := &domain.ProfileSummary{
		Region:  region,
		Routing: route,
		Version: catalog.Version,
		Account: domain.Account{
			Puuid:    acc.Puuid,
			GameName: acc.GameName,
			TagLine:  acc.TagLine,
		},
		Summoner: domain.Summoner{
			ID:             summoner.ID,
			AccountID:      summoner.AccountID,
			Puuid:          summoner.Puuid,
			ProfileIconID:  summoner.ProfileIconID,
			ProfileIconURL: catalog.ProfileIcon(summoner.ProfileIconID),
			SummonerLevel:  summoner.SummonerLevel,
		},
		Ranked: domain.Ranked{
			BestQueue: toRankedEntry(stats.BestQueue(entries)),
			Overall:   stats.ResolveOverall(stats.RankedSource(entries), stats.ChampionSource(aggs)),
			Entries:   toRankedEntries(entries),
		},
		Champions:          championStats(aggs, catalog),
		Mastery:            masteryList(masteries, catalog),
		Matches:            batch.IDs,
		MatchesRateLimited: batch.RateLimited,
		Performance:        perf,
		Recommendations:    stats.Recommend(perf),
		LoadedAt:           time.Now().UTC(),
	}
	if summary.Matches == nil {
		summary.Matches = []string{}
	}

	logger.Info().
		Int("ranked_entries", len(entries)).
		Int("matches", len(batch.Items)).
		Int("champions", len(summary.Champions)).
		Bool("rate_limited", batch.RateLimited).
		Dur("duration", time.Since(start)).
		Msg("profile assembled")

	return summary, nil
}

func toRankedEntry(e *riot.LeagueEntry) *domain.RankedEntry {
	if e == nil {
		return nil
	}
	return &domain.RankedEntry{
		QueueType:    e.QueueType,
		Tier:         e.Tier,
		Rank:         e.Rank,
		LeaguePoints: e.LeaguePoints,
		Wins:         e.Wins,
		Losses:       e.Losses,
		WinRate:      stats.WinRate(e.Wins, e.Wins+e.Losses),
		HotStreak:    e.HotStreak,
	}
}

// toRankedEntries keeps at most one entry per queue type.
func toRankedEntries(entries []riot.LeagueEntry) []domain.RankedEntry {
	unique := stats.UniqueQueues(entries)
	out := make([]domain.RankedEntry, 0, len(unique))
	for i := range unique {
		out = append(out, *toRankedEntry(&unique[i]))
	}
	return out
}

func championStats(aggs *stats.Aggregates, catalog *ddragon.Catalog) []domain.ChampionStat {
	sorted := aggs.Sorted()
	if len(sorted) > constants.ChampionStatsLimit {
		sorted = sorted[:constants.ChampionStatsLimit]
	}

	out := make([]domain.ChampionStat, 0, len(sorted))
	for _, a := range sorted {
		name := a.ChampionName
		if champ, ok := catalog.Champions[a.ChampionID]; ok {
			name = champ.Name
		}

		stat := domain.ChampionStat{
			ChampionID:  a.ChampionID,
			Name:        name,
			Icon:        catalog.ChampionIcon(a.ChampionID),
			Games:       a.Games,
			Wins:        a.Wins,
			Losses:      a.Losses(),
			Kills:       a.Kills,
			Deaths:      a.Deaths,
			Assists:     a.Assists,
			CS:          a.CS,
			Duration:    int64(a.Duration / time.Second),
			Damage:      a.Damage,
			Gold:        a.Gold,
			Vision:      a.Vision,
			KDA:         a.KDA(),
			WinRate:     stats.WinRate(a.Wins, a.Games),
			CSPerMinute: stats.CSPerMinute(a.CS, a.Duration.Minutes()),
			Items:       []domain.Frequency{},
			Spells:      []domain.SpellPairFrequency{},
			Keystones:   []domain.Frequency{},
		}

		for _, c := range a.Items.Top(constants.ItemFrequencyLimit) {
			stat.Items = append(stat.Items, domain.Frequency{
				ID: c.Key, Name: catalog.ItemName(c.Key), Icon: catalog.ItemIcon(c.Key), Count: c.N,
			})
		}
		for _, c := range a.SpellPairs.Top(constants.SpellPairFrequencyLimit) {
			stat.Spells = append(stat.Spells, domain.SpellPairFrequency{
				Spells: c.Key,
				Names:  [2]string{catalog.SpellName(c.Key[0]), catalog.SpellName(c.Key[1])},
				Icons:  [2]string{catalog.SpellIcon(c.Key[0]), catalog.SpellIcon(c.Key[1])},
				Count:  c.N,
			})
		}
		for _, c := range a.Keystones.Top(constants.KeystoneFrequencyLimit) {
			stat.Keystones = append(stat.Keystones, domain.Frequency{
				ID: c.Key, Name: catalog.RuneName(c.Key), Icon: catalog.RuneIcon(c.Key), Count: c.N,
			})
		}
		out = append(out, stat)
	}
	return out
}

func masteryList(masteries []riot.ChampionMastery, catalog *ddragon.Catalog) []domain.Mastery {
	sorted := make([]riot.ChampionMastery, len(masteries))
	copy(sorted, masteries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ChampionPoints > sorted[j].ChampionPoints })
	if len(sorted) > constants.MasteryDisplayLimit {
		sorted = sorted[:constants.MasteryDisplayLimit]
	}

	out := make([]domain.Mastery, 0, len(sorted))
	for _, m := range sorted {
		out = append(out, domain.Mastery{
			ChampionID:   m.ChampionID,
			Name:         catalog.ChampionName(m.ChampionID),
			Icon:         catalog.ChampionIcon(m.ChampionID),
			Level:        m.ChampionLevel,
			Points:       m.ChampionPoints,
			LastPlayTime: m.LastPlayTime,
		})
	}
	return out
}
