// Package stats derives per-champion and per-player statistics from raw match records.
package stats

import (
	"sort"
	"time"

	"lol-tracker/internal/domain"
	"lol-tracker/internal/riot"
)

// Counter is a frequency table that remembers first-seen order for tie breaking.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

type Count[K comparable] struct {
	Key K
	N   int
}

func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

func (c *Counter[K]) Add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

func (c *Counter[K]) Get(k K) int {
	return c.counts[k]
}

func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Top returns up to n keys by count, ties in first-seen order. n <= 0 returns all.
func (c *Counter[K]) Top(n int) []Count[K] {
	out := make([]Count[K], 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Count[K]{Key: k, N: c.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].N > out[j].N })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type ChampionAggregate struct {
	ChampionID   int
	ChampionName string

	Games   int
	Wins    int
	Kills   int
	Deaths  int
	Assists int
	CS      int

	Duration time.Duration
	Damage   int
	Gold     int
	Vision   int

	Items      *Counter[int]
	SpellPairs *Counter[[2]int]
	Keystones  *Counter[int]
}

func newChampionAggregate(id int, name string) *ChampionAggregate {
	return &ChampionAggregate{
		ChampionID:   id,
		ChampionName: name,
		Items:        NewCounter[int](),
		SpellPairs:   NewCounter[[2]int](),
		Keystones:    NewCounter[int](),
	}
}

func (a *ChampionAggregate) Losses() int {
	return a.Games - a.Wins
}

func (a *ChampionAggregate) KDA() domain.KDA {
	return KDA(a.Kills, a.Deaths, a.Assists)
}

func (a *ChampionAggregate) add(p *riot.Participant, duration time.Duration) {
	a.Games++
	if p.Win {
		a.Wins++
	}
	a.Kills += p.Kills
	a.Deaths += p.Deaths
	a.Assists += p.Assists
	a.CS += p.CS()
	a.Duration += duration
	a.Damage += p.TotalDamageDealtToChampions
	a.Gold += p.GoldEarned
	a.Vision += p.VisionScore

	for _, item := range p.Items() {
		a.Items.Add(item)
	}
	a.SpellPairs.Add(p.SpellPair())
	if k := p.Keystone(); k != 0 {
		a.Keystones.Add(k)
	}
}

// Aggregates is owned by a single request and is not safe for concurrent use.
type Aggregates struct {
	byChampion map[int]*ChampionAggregate
	order      []int
}

func NewAggregates() *Aggregates {
	return &Aggregates{byChampion: make(map[int]*ChampionAggregate)}
}

// Fold accumulates the participant record of puuid from every match. Matches without puuid are ignored.
func Fold(matches []*riot.Match, puuid string) *Aggregates {
	aggs := NewAggregates()
	for _, m := range matches {
		aggs.Add(m, puuid)
	}
	return aggs
}

func (a *Aggregates) Add(m *riot.Match, puuid string) bool {
	if m == nil {
		return false
	}
	p := m.Participant(puuid)
	if p == nil {
		return false
	}

	agg, ok := a.byChampion[p.ChampionID]
	if !ok {
		agg = newChampionAggregate(p.ChampionID, p.ChampionName)
		a.byChampion[p.ChampionID] = agg
		a.order = append(a.order, p.ChampionID)
	}
	agg.add(p, m.Info.Duration())
	return true
}

func (a *Aggregates) Get(championID int) (*ChampionAggregate, bool) {
	agg, ok := a.byChampion[championID]
	return agg, ok
}

func (a *Aggregates) Len() int {
	return len(a.order)
}

// Sorted orders champions by games played, ties in first-seen order.
func (a *Aggregates) Sorted() []*ChampionAggregate {
	out := make([]*ChampionAggregate, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.byChampion[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Games > out[j].Games })
	return out
}

func (a *Aggregates) Totals() (games, wins int) {
	for _, agg := range a.byChampion {
		games += agg.Games
		wins += agg.Wins
	}
	return games, wins
}
