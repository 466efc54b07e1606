package constants

import "time"

const (
	StaticCacheTTL    = 1 * time.Hour
	IdentityCacheTTL  = 5 * time.Minute
	MatchCacheTTL     = 24 * time.Hour
	LeagueCacheTTL    = 10 * time.Minute
	VersionRefreshTTL = 6 * time.Hour
)

const (
	UpstreamTimeout = 30 * time.Second
	StaticTimeout   = 10 * time.Second
	RequestTimeout  = 60 * time.Second
	CacheTimeout    = 2 * time.Second
)

const (
	MatchFetchConcurrency = 5
	MatchFetchPacing      = 50 * time.Millisecond
	RetryMaxAttempts      = 3
	RetryBaseDelay        = 1 * time.Second
)

const (
	ProfileMatchCount    = 20
	MaxMatchIDCount      = 100
	MatchHistoryMaxCount = 20
	ChampionStatsLimit   = 10
	MasteryFetchCount    = 10
	MasteryDisplayLimit  = 7
	RankingLimit         = 100
	BestChampionsLimit   = 5
	DefaultHistoryCount  = 10
	LiveHistoryCount     = 5
)

const (
	ItemFrequencyLimit      = 6
	SpellPairFrequencyLimit = 2
	KeystoneFrequencyLimit  = 2
)

const (
	RedisPoolSize     = 10
	RedisMinIdleConns = 1
	RedisDialTimeout  = 5 * time.Second
	RedisIOTimeout    = 3 * time.Second
)

const (
	// Bloom filter sizing for the match cache seen-set.
	MatchFilterCapacity = 200000
	MatchFilterFPRate   = 0.001
)

const (
	FallbackVersion = "14.24.1"
	RankedSoloQueue = "RANKED_SOLO_5x5"
	RankedFlexQueue = "RANKED_FLEX_SR"
	StatusLocale    = "en_US"
)

const (
	ShutdownTimeout = 5 * time.Second
)
