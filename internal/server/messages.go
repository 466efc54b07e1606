package server

import (
	"lol-tracker/internal/ddragon"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/routing"
)

type ProfileRequest struct {
	Region   string `json:"region"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	// Puuid skips the riot-id lookup when set.
	Puuid string `json:"puuid,omitempty"`
}

type MatchesRequest struct {
	Region string `json:"region"`
	Puuid  string `json:"puuid"`
	Start  int    `json:"start,omitempty"`
	Count  int    `json:"count,omitempty"`
	Queue  int    `json:"queue,omitempty"`
	Type   string `json:"type,omitempty"`
}

type MatchRequest struct {
	Region  string `json:"region"`
	MatchID string `json:"matchId"`
}

type StaticRequest struct{}

type VersionResponse struct {
	Version  string   `json:"version"`
	Versions []string `json:"versions"`
}

type ChampionsResponse struct {
	Version   string             `json:"version"`
	Champions []ddragon.Champion `json:"champions"`
}

type ChampionRequest struct {
	// ID is the champion's DDragon id, e.g. "MonkeyKing".
	ID string `json:"id"`
}

type ItemsResponse struct {
	Version string         `json:"version"`
	Items   []ddragon.Item `json:"items"`
}

type SummonerSpellsResponse struct {
	Version string                  `json:"version"`
	Spells  []ddragon.SummonerSpell `json:"spells"`
}

type RunesResponse struct {
	Version string             `json:"version"`
	Trees   []ddragon.RuneTree `json:"trees"`
}

type LeagueRequest struct {
	Region string `json:"region"`
	Tier   string `json:"tier"`
	Queue  string `json:"queue,omitempty"`
}

type RankingRequest struct {
	Region string `json:"region"`
	Queue  string `json:"queue,omitempty"`
}

type LiveGameRequest struct {
	Region string `json:"region"`
	Puuid  string `json:"puuid"`
}

type RegionRequest struct {
	Region string `json:"region"`
}

type RegionsResponse struct {
	Default string           `json:"default"`
	Regions []routing.Region `json:"regions"`
}

type HealthResponse struct {
	Status        string             `json:"status"`
	DefaultRegion string             `json:"default_region"`
	SharedCache   bool               `json:"shared_cache"`
	APIKeySet     bool               `json:"api_key_set"`
	RateLimit     riot.RateLimitInfo `json:"rate_limit"`
}
