package stats

import (
	"lol-tracker/internal/domain"
	"lol-tracker/internal/riot"
)

const (
	SourceRanked    = "ranked"
	SourceChampions = "champions"
	SourceNone      = "none"
)

// OverallSource yields win/loss totals, or false when it has nothing to offer.
type OverallSource struct {
	Name    string
	Resolve func() (wins, losses int, ok bool)
}

// RankedSource sums wins and losses over every ranked queue, counting each queue type once.
func RankedSource(entries []riot.LeagueEntry) OverallSource {
	return OverallSource{
		Name: SourceRanked,
		Resolve: func() (int, int, bool) {
			var wins, losses int
			for _, e := range UniqueQueues(entries) {
				wins += e.Wins
				losses += e.Losses
			}
			return wins, losses, wins+losses > 0
		},
	}
}

// ChampionSource derives totals from the fetched match history.
func ChampionSource(aggs *Aggregates) OverallSource {
	return OverallSource{
		Name: SourceChampions,
		Resolve: func() (int, int, bool) {
			if aggs == nil {
				return 0, 0, false
			}
			games, wins := aggs.Totals()
			return wins, games - wins, games > 0
		},
	}
}

// ResolveOverall takes the first source that has data, in the order given.
func ResolveOverall(sources ...OverallSource) domain.Overall {
	for _, src := range sources {
		wins, losses, ok := src.Resolve()
		if !ok {
			continue
		}
		games := wins + losses
		return domain.Overall{
			Wins:    wins,
			Losses:  losses,
			Games:   games,
			WinRate: WinRate(wins, games),
			Source:  src.Name,
		}
	}
	return domain.Overall{Source: SourceNone}
}
