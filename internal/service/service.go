package service

import (
	"context"

	"lol-tracker/internal/ddragon"
	"lol-tracker/internal/riot"
)

// Riot is the subset of the upstream client the services depend on.
type Riot interface {
	AccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, error)
	AccountByPUUID(ctx context.Context, routing, puuid string) (*riot.Account, error)
	SummonerByPUUID(ctx context.Context, region, puuid string) (*riot.Summoner, error)
	LeagueEntriesByPUUID(ctx context.Context, region, puuid string) ([]riot.LeagueEntry, error)
	ChampionMasteries(ctx context.Context, region, puuid string, top int) ([]riot.ChampionMastery, error)
	MatchIDsByPUUID(ctx context.Context, routing, puuid string, q riot.MatchIDsQuery) ([]string, error)
	Match(ctx context.Context, routing, matchID string) (*riot.Match, error)
	MatchTimeline(ctx context.Context, routing, matchID string) (*riot.Timeline, error)
	ApexLeague(ctx context.Context, region, tier, queue string) (*riot.LeagueList, error)
	ActiveGame(ctx context.Context, region, puuid string) (*riot.CurrentGame, error)
	FeaturedGames(ctx context.Context, region string) (*riot.FeaturedGames, error)
	PlatformStatus(ctx context.Context, region string) (*riot.PlatformStatus, error)
}

type StaticData interface {
	Catalog(ctx context.Context) *ddragon.Catalog
}

type MatchCache interface {
	Get(ctx context.Context, matchID string) (*riot.Match, bool)
	Put(ctx context.Context, match *riot.Match)
}

type AccountCache interface {
	GetByRiotID(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, bool)
	Put(ctx context.Context, routing, gameName, tagLine string, acc *riot.Account)
}

type LeagueCache interface {
	Get(ctx context.Context, region, tier, queue string) (*riot.LeagueList, bool)
	Put(ctx context.Context, region, tier, queue string, list *riot.LeagueList)
}
