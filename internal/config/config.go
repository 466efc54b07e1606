package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"lol-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	RiotAPIKey     string
	RiotAPIBase    string
	DDragonBase    string
	DDragonLocale  string
	DefaultRegion  string
	DefaultRouting string
	ServerPort     string
	LogLevel       string
	RedisURL       string

	MatchFetchConcurrency int
	MatchFetchPacing      time.Duration
	ProfileMatchCount     int

	StaticCacheTTL   time.Duration
	IdentityCacheTTL time.Duration
	MatchCacheTTL    time.Duration
}

func Load() (*Config, error) {
	// a missing .env is fine, the process environment wins anyway
	_ = godotenv.Load()

	cfg := &Config{
		RiotAPIKey:     getEnv("RIOT_API_KEY", ""),
		RiotAPIBase:    getEnv("RIOT_API_BASE", "api.riotgames.com"),
		DDragonBase:    getEnv("DDRAGON_BASE", "https://ddragon.leagueoflegends.com"),
		DDragonLocale:  getEnv("DDRAGON_LOCALE", "en_US"),
		DefaultRegion:  getEnv("DEFAULT_REGION", "la1"),
		DefaultRouting: getEnv("DEFAULT_ROUTING", "americas"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RedisURL:       getEnv("REDIS_URL", ""),

		MatchFetchConcurrency: getEnvInt("MATCH_FETCH_CONCURRENCY", constants.MatchFetchConcurrency),
		MatchFetchPacing:      getEnvDuration("MATCH_FETCH_PACING", constants.MatchFetchPacing),
		ProfileMatchCount:     getEnvInt("PROFILE_MATCH_COUNT", constants.ProfileMatchCount),

		StaticCacheTTL:   constants.StaticCacheTTL,
		IdentityCacheTTL: constants.IdentityCacheTTL,
		MatchCacheTTL:    constants.MatchCacheTTL,
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}
	if cfg.MatchFetchConcurrency < 1 {
		cfg.MatchFetchConcurrency = 1
	}
	if cfg.ProfileMatchCount < 1 {
		cfg.ProfileMatchCount = constants.ProfileMatchCount
	}
	if cfg.ProfileMatchCount > constants.MaxMatchIDCount {
		cfg.ProfileMatchCount = constants.MaxMatchIDCount
	}

	return cfg, nil
}

// Log writes the effective configuration, without secrets.
func Log(cfg *Config, logger zerolog.Logger) {
	logger.Info().
		Str("riot_api_base", cfg.RiotAPIBase).
		Str("ddragon_base", cfg.DDragonBase).
		Str("ddragon_locale", cfg.DDragonLocale).
		Str("default_region", cfg.DefaultRegion).
		Str("default_routing", cfg.DefaultRouting).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("redis", cfg.RedisURL != "").
		Int("match_fetch_concurrency", cfg.MatchFetchConcurrency).
		Dur("match_fetch_pacing", cfg.MatchFetchPacing).
		Int("profile_match_count", cfg.ProfileMatchCount).
		Dur("static_cache_ttl", cfg.StaticCacheTTL).
		Msg("configuration loaded")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
