package stats

import (
	"strings"

	"lol-tracker/internal/riot"
)

var TierOrder = map[string]int{
	"IRON":        1,
	"BRONZE":      2,
	"SILVER":      3,
	"GOLD":        4,
	"PLATINUM":    5,
	"EMERALD":     6,
	"DIAMOND":     7,
	"MASTER":      8,
	"GRANDMASTER": 9,
	"CHALLENGER":  10,
}

var DivisionOrder = map[string]int{
	"IV":  1,
	"III": 2,
	"II":  3,
	"I":   4,
}

// Compare orders entries by tier, then division, then LP. nil sorts below any entry.
func Compare(a, b *riot.LeagueEntry) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	keys := [][2]int{
		{TierOrder[strings.ToUpper(a.Tier)], TierOrder[strings.ToUpper(b.Tier)]},
		{DivisionOrder[strings.ToUpper(a.Rank)], DivisionOrder[strings.ToUpper(b.Rank)]},
		{a.LeaguePoints, b.LeaguePoints},
	}
	for _, k := range keys {
		if k[0] != k[1] {
			if k[0] < k[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// BestQueue returns the highest ranked entry; on a full tie the earlier entry wins.
func BestQueue(entries []riot.LeagueEntry) *riot.LeagueEntry {
	var best *riot.LeagueEntry
	for i := range entries {
		if Compare(&entries[i], best) > 0 {
			best = &entries[i]
		}
	}
	return best
}

// UniqueQueues keeps the first entry per queue type, preserving order.
func UniqueQueues(entries []riot.LeagueEntry) []riot.LeagueEntry {
	out := make([]riot.LeagueEntry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.QueueType] {
			continue
		}
		seen[e.QueueType] = true
		out = append(out, e)
	}
	return out
}
