package service

import (
	"context"
	"sync/atomic"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/ddragon"
	"lol-tracker/internal/fetcher"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/routing"

	"github.com/rs/zerolog"
)

type fakeRiot struct {
	accountByRiotID func(routing, name, tag string) (*riot.Account, error)
	accountByPUUID  func(routing, puuid string) (*riot.Account, error)
	summoner        func(region, puuid string) (*riot.Summoner, error)
	entries         func(region, puuid string) ([]riot.LeagueEntry, error)
	masteries       func(region, puuid string, top int) ([]riot.ChampionMastery, error)
	matchIDs        func(routing, puuid string, q riot.MatchIDsQuery) ([]string, error)
	match           func(routing, id string) (*riot.Match, error)
	league          func(region, tier, queue string) (*riot.LeagueList, error)
	activeGame      func(region, puuid string) (*riot.CurrentGame, error)
	timeline        func(routing, id string) (*riot.Timeline, error)
	featured        func(region string) (*riot.FeaturedGames, error)
	status          func(region string) (*riot.PlatformStatus, error)

	accountCalls atomic.Int32
	matchCalls   atomic.Int32
	leagueCalls  atomic.Int32
}

func (f *fakeRiot) AccountByRiotID(_ context.Context, routing, name, tag string) (*riot.Account, error) {
	f.accountCalls.Add(1)
	return f.accountByRiotID(routing, name, tag)
}

func (f *fakeRiot) AccountByPUUID(_ context.Context, routing, puuid string) (*riot.Account, error) {
	return f.accountByPUUID(routing, puuid)
}

func (f *fakeRiot) SummonerByPUUID(_ context.Context, region, puuid string) (*riot.Summoner, error) {
	return f.summoner(region, puuid)
}

func (f *fakeRiot) LeagueEntriesByPUUID(_ context.Context, region, puuid string) ([]riot.LeagueEntry, error) {
	if f.entries == nil {
		return nil, nil
	}
	return f.entries(region, puuid)
}

func (f *fakeRiot) ChampionMasteries(_ context.Context, region, puuid string, top int) ([]riot.ChampionMastery, error) {
	if f.masteries == nil {
		return nil, nil
	}
	return f.masteries(region, puuid, top)
}

func (f *fakeRiot) MatchIDsByPUUID(_ context.Context, routing, puuid string, q riot.MatchIDsQuery) ([]string, error) {
	if f.matchIDs == nil {
		return nil, nil
	}
	return f.matchIDs(routing, puuid, q)
}

func (f *fakeRiot) Match(_ context.Context, routing, id string) (*riot.Match, error) {
	f.matchCalls.Add(1)
	return f.match(routing, id)
}

func (f *fakeRiot) ApexLeague(_ context.Context, region, tier, queue string) (*riot.LeagueList, error) {
	f.leagueCalls.Add(1)
	return f.league(region, tier, queue)
}

func (f *fakeRiot) ActiveGame(_ context.Context, region, puuid string) (*riot.CurrentGame, error) {
	return f.activeGame(region, puuid)
}

func (f *fakeRiot) MatchTimeline(_ context.Context, routing, id string) (*riot.Timeline, error) {
	return f.timeline(routing, id)
}

func (f *fakeRiot) FeaturedGames(_ context.Context, region string) (*riot.FeaturedGames, error) {
	return f.featured(region)
}

func (f *fakeRiot) PlatformStatus(_ context.Context, region string) (*riot.PlatformStatus, error) {
	return f.status(region)
}

type fakeStatic struct{}

func (fakeStatic) Catalog(context.Context) *ddragon.Catalog {
	return &ddragon.Catalog{
		Version: "14.2.1",
		Champions: map[int]ddragon.Champion{
			64:  {ID: "LeeSin", Key: 64, Name: "Lee Sin", Tags: []string{"Fighter", "Assassin"}, Image: ddragon.Image{Full: "LeeSin.png"}},
			12:  {ID: "Alistar", Key: 12, Name: "Alistar", Tags: []string{"Tank", "Support"}, Image: ddragon.Image{Full: "Alistar.png"}},
			103: {ID: "Ahri", Key: 103, Name: "Ahri", Tags: []string{"Mage", "Assassin"}, Image: ddragon.Image{Full: "Ahri.png"}},
		},
		Items:  map[int]ddragon.Item{6692: {ID: 6692, Name: "Eclipse"}, 6655: {ID: 6655, Name: "Luden's Companion"}},
		Spells: map[int]ddragon.SummonerSpell{4: {Key: 4, Name: "Flash"}, 11: {Key: 11, Name: "Smite"}, 14: {Key: 14, Name: "Ignite"}},
		Runes:  map[int]ddragon.Rune{8010: {ID: 8010, Name: "Conqueror"}, 8112: {ID: 8112, Name: "Electrocute"}, 8400: {ID: 8400, Name: "Resolve"}},
	}
}

func statusErr(status int) error {
	return &riot.Error{Status: status, Kind: riot.KindFor(status)}
}

func testFetcher() *fetcher.Fetcher {
	return fetcher.New(fetcher.Options{
		Concurrency: 3,
		Policy: fetcher.Policy{
			MaxAttempts: 3,
			Delay:       fetcher.Linear(time.Millisecond),
			Retryable:   riot.IsRateLimited,
		},
	}, zerolog.Nop())
}

func newMatchService(r Riot) *MatchService {
	cache := repository.NewMatchRepository(repository.NewMemoryKV(), &config.Config{}, zerolog.Nop())
	return NewMatchService(r, cache, testFetcher(), routing.New(""), zerolog.Nop())
}

func newProfileService(r Riot) *ProfileService {
	accounts := repository.NewAccountRepository(repository.NewMemoryKV(), &config.Config{}, zerolog.Nop())
	return NewProfileService(r, fakeStatic{}, accounts, newMatchService(r), routing.New(""), &config.Config{ProfileMatchCount: 20}, zerolog.Nop())
}

const puuid = "puuid-me"

func playedMatch(id string, p riot.Participant) *riot.Match {
	p.Puuid = puuid
	return &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info: riot.MatchInfo{
			GameDuration:     1800,
			GameEndTimestamp: 1,
			Participants:     []riot.Participant{p, {Puuid: "other", ChampionID: 99}},
		},
	}
}
