package stats

import (
	"lol-tracker/internal/domain"
)

// KDA reports Perfect instead of dividing by zero deaths.
func KDA(kills, deaths, assists int) domain.KDA {
	if deaths == 0 {
		return domain.KDA{Ratio: float64(kills + assists), Perfect: true}
	}
	return domain.KDA{Ratio: float64(kills+assists) / float64(deaths)}
}

// WinRate is a percentage rounded to one decimal, 0 when no games were played.
func WinRate(wins, games int) float64 {
	if games <= 0 {
		return 0
	}
	return domain.Round(float64(wins)/float64(games)*100, 1)
}

func CSPerMinute(cs int, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return domain.Round(float64(cs)/minutes, 1)
}
