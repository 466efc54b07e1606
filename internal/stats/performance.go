package stats

import (
	"fmt"
	"sort"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/riot"
)

const (
	highDeathsThreshold    = 6.0
	lowVisionThreshold     = 15.0
	highVisionThreshold    = 25.0
	lowCSPerMinThreshold   = 6.0
	strongKDAThreshold     = 3.0
	strongWinRateThreshold = 55.0
	minBestChampionGames   = 2
	worstChampionsLimit    = 3
	championPoolLimit      = 3
)

var laningRoles = map[string]bool{
	"TOP":    true,
	"MID":    true,
	"MIDDLE": true,
	"BOTTOM": true,
}

var roleTips = map[string][]string{
	"TOP": {
		"Manage waves to build pressure before leaving lane",
		"Use Teleport to impact other lanes",
		"Know your matchups and power spikes",
	},
	"JUNGLE": {
		"Track the enemy jungler constantly",
		"Play around objective timers (Drake, Herald, Baron)",
		"Identify which lane has the most carry potential",
	},
	"MIDDLE": {
		"Roam after pushing the wave",
		"Ward to avoid jungle ganks",
		"Use your power spikes to make plays",
	},
	"BOTTOM": {
		"Farm safely in the early game",
		"Coordinate trades with your support",
		"Position carefully in teamfights",
	},
	"UTILITY": {
		"Keep vision on upcoming objectives",
		"Protect your carries",
		"Look for engages when you have a numbers advantage",
	},
}

// Analyze summarises the player's own records across matches. It returns nil when puuid played none of them.
func Analyze(matches []*riot.Match, puuid string) *domain.Performance {
	aggs := NewAggregates()
	roles := NewCounter[string]()

	var kills, deaths, assists, cs, vision, damage, gold int
	var minutes float64
	for _, m := range matches {
		if !aggs.Add(m, puuid) {
			continue
		}
		p := m.Participant(puuid)
		kills += p.Kills
		deaths += p.Deaths
		assists += p.Assists
		cs += p.CS()
		vision += p.VisionScore
		damage += p.TotalDamageDealtToChampions
		gold += p.GoldEarned
		minutes += m.Info.Duration().Minutes()
		if p.TeamPosition != "" {
			roles.Add(p.TeamPosition)
		}
	}

	games, wins := aggs.Totals()
	if games == 0 {
		return nil
	}
	n := float64(games)

	perf := &domain.Performance{
		Games:   games,
		Wins:    wins,
		Losses:  games - wins,
		WinRate: WinRate(wins, games),
		KDA:     KDA(kills, deaths, assists),
		Averages: domain.Averages{
			Kills:           domain.Round(float64(kills)/n, 1),
			Deaths:          domain.Round(float64(deaths)/n, 1),
			Assists:         domain.Round(float64(assists)/n, 1),
			CS:              domain.Round(float64(cs)/n, 1),
			CSPerMinute:     CSPerMinute(cs, minutes),
			Vision:          domain.Round(float64(vision)/n, 1),
			Damage:          domain.Round(float64(damage)/n, 0),
			Gold:            domain.Round(float64(gold)/n, 0),
			DurationMinutes: domain.Round(minutes/n, 1),
		},
		Roles: make(map[string]int, roles.Len()),
	}
	for _, r := range roles.Top(0) {
		perf.Roles[r.Key] = r.N
	}
	if top := roles.Top(1); len(top) > 0 {
		perf.PreferredRole = top[0].Key
	}

	perf.BestChampions, perf.WorstChampions = rankChampions(aggs)
	return perf
}

func rankChampions(aggs *Aggregates) (best, worst []domain.BestChampion) {
	var candidates []domain.BestChampion
	for _, agg := range aggs.Sorted() {
		if agg.Games < minBestChampionGames {
			continue
		}
		candidates = append(candidates, domain.BestChampion{
			ChampionID: agg.ChampionID,
			Name:       agg.ChampionName,
			Games:      agg.Games,
			Wins:       agg.Wins,
			WinRate:    WinRate(agg.Wins, agg.Games),
			KDA:        agg.KDA(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].WinRate != candidates[j].WinRate {
			return candidates[i].WinRate > candidates[j].WinRate
		}
		return candidates[j].KDA.Less(candidates[i].KDA)
	})

	best = candidates
	if len(best) > constants.BestChampionsLimit {
		best = best[:constants.BestChampionsLimit]
	}
	if len(candidates) > worstChampionsLimit {
		tail := candidates[len(candidates)-worstChampionsLimit:]
		for i := len(tail) - 1; i >= 0; i-- {
			worst = append(worst, tail[i])
		}
	}
	return best, worst
}

// Recommend turns a performance summary into improvement areas and strengths.
func Recommend(perf *domain.Performance) *domain.Recommendations {
	rec := &domain.Recommendations{
		ChampionPool:     []string{},
		ImprovementAreas: []string{},
		Strengths:        []string{},
		PlaystyleTips:    []string{},
	}
	if perf == nil || perf.Games == 0 {
		return rec
	}

	for i, c := range perf.BestChampions {
		if i == championPoolLimit {
			break
		}
		rec.ChampionPool = append(rec.ChampionPool,
			fmt.Sprintf("%s: %.1f%% win rate over %d games", c.Name, c.WinRate, c.Games))
	}

	avg := perf.Averages
	if avg.Deaths > highDeathsThreshold {
		rec.ImprovementAreas = append(rec.ImprovementAreas,
			"High deaths: work on positioning and map awareness")
	}
	if avg.Vision < lowVisionThreshold {
		rec.ImprovementAreas = append(rec.ImprovementAreas,
			"Low vision: buy more control wards and use your trinket")
	}
	if avg.CSPerMinute < lowCSPerMinThreshold && laningRoles[perf.PreferredRole] {
		rec.ImprovementAreas = append(rec.ImprovementAreas,
			"Low CS: practice last hitting (target 7+ CS/min)")
	}

	if perf.KDA.Perfect || perf.KDA.Ratio >= strongKDAThreshold {
		rec.Strengths = append(rec.Strengths,
			fmt.Sprintf("Excellent KDA: %s", perf.KDA))
	}
	if perf.WinRate >= strongWinRateThreshold {
		rec.Strengths = append(rec.Strengths,
			fmt.Sprintf("High win rate: %.1f%%", perf.WinRate))
	}
	if avg.Vision >= highVisionThreshold {
		rec.Strengths = append(rec.Strengths, "Great vision control")
	}

	role := perf.PreferredRole
	if role == "MID" {
		role = "MIDDLE"
	}
	if tips, ok := roleTips[role]; ok {
		rec.PlaystyleTips = append(rec.PlaystyleTips, tips...)
	}
	return rec
}
