package fx

import (
	"context"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/ddragon"
	"lol-tracker/internal/fetcher"
	"lol-tracker/internal/logger"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/routing"
	"lol-tracker/internal/server"
	"lol-tracker/internal/service"
	"lol-tracker/internal/storage"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideRiot(c *riot.Client) service.Riot { return c }

func ProvideRateLimits(c *riot.Client) server.RateLimits { return c }

func ProvideCatalog(s *ddragon.Service) service.StaticData { return s }

func ProvideStatic(s *ddragon.Service) server.StaticData { return s }

func ProvideMatchCache(r *repository.MatchRepository) service.MatchCache { return r }

func ProvideAccountCache(r *repository.AccountRepository) service.AccountCache { return r }

func ProvideLeagueCache(r *repository.LeagueRepository) service.LeagueCache { return r }

func ProvideServerDeps(
	profiles *service.ProfileService,
	matches *service.MatchService,
	leaderboards *service.LeaderboardService,
	live *service.LiveGameService,
	status *service.StatusService,
	static server.StaticData,
	limits server.RateLimits,
	routes *routing.Table,
) server.Deps {
	return server.Deps{
		Profiles:     profiles,
		Matches:      matches,
		Leaderboards: leaderboards,
		LiveGames:    live,
		Status:       status,
		Static:       static,
		RateLimits:   limits,
		Routes:       routes,
	}
}

// StartVersionRefresher re-resolves the DDragon patch periodically so a new patch is picked up
// without a restart.
func StartVersionRefresher(lc fx.Lifecycle, static *ddragon.Service, logger zerolog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(constants.VersionRefreshTTL)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						refreshCtx, refreshCancel := context.WithTimeout(ctx, constants.StaticTimeout)
						version := static.RefreshVersion(refreshCtx)
						refreshCancel()
						logger.Debug().Str("version", version).Msg("ddragon version refreshed")
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	fx.Provide(routing.NewTable),
	// storage
	fx.Provide(storage.NewRedis),
	fx.Provide(repository.NewKV),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewAccountRepository),
	fx.Provide(repository.NewLeagueRepository),
	fx.Provide(ProvideMatchCache, ProvideAccountCache, ProvideLeagueCache),
	// upstream clients
	fx.Provide(riot.NewClient),
	fx.Provide(ddragon.NewService),
	fx.Provide(fetcher.NewFetcher),
	fx.Provide(ProvideRiot, ProvideRateLimits, ProvideCatalog, ProvideStatic),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewProfileService),
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewLiveGameService),
	fx.Provide(service.NewStatusService),
	// server
	fx.Provide(ProvideServerDeps),
	fx.Provide(server.NewTrackerServer),

	fx.Invoke(config.Log),
	fx.Invoke(StartVersionRefresher),
)
