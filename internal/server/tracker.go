package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"lol-tracker/internal/config"
	"lol-tracker/internal/ddragon"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/routing"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const TrackerPath = "/loltracker.v1.LolTracker/"

const (
	ProcedureGetProfile        = TrackerPath + "GetProfile"
	ProcedureGetMatches        = TrackerPath + "GetMatches"
	ProcedureGetMatch          = TrackerPath + "GetMatch"
	ProcedureGetVersion        = TrackerPath + "GetVersion"
	ProcedureGetChampions      = TrackerPath + "GetChampions"
	ProcedureGetChampion       = TrackerPath + "GetChampion"
	ProcedureGetItems          = TrackerPath + "GetItems"
	ProcedureGetSummonerSpells = TrackerPath + "GetSummonerSpells"
	ProcedureGetRunes          = TrackerPath + "GetRunes"
	ProcedureGetLeague         = TrackerPath + "GetLeague"
	ProcedureGetRanking        = TrackerPath + "GetRanking"
	ProcedureGetLiveGame       = TrackerPath + "GetLiveGame"
	ProcedureGetRegions        = TrackerPath + "GetRegions"

	ProcedureGetMatchTimeline       = TrackerPath + "GetMatchTimeline"
	ProcedureGetFeaturedGames       = TrackerPath + "GetFeaturedGames"
	ProcedureGetPlatformStatus      = TrackerPath + "GetPlatformStatus"
	ProcedureGetLiveRecommendations = TrackerPath + "GetLiveRecommendations"
)

type Profiles interface {
	Load(ctx context.Context, region, gameName, tagLine string) (*domain.ProfileSummary, error)
	LoadByPUUID(ctx context.Context, region, puuid string) (*domain.ProfileSummary, error)
}

type Matches interface {
	GetMatch(ctx context.Context, region, matchID string) (*riot.Match, error)
	GetMatchHistory(ctx context.Context, region, puuid string, q riot.MatchIDsQuery) (*domain.MatchBatch, error)
	GetTimeline(ctx context.Context, region, matchID string) (*riot.Timeline, error)
}

type Leaderboards interface {
	League(ctx context.Context, region, tier, queue string) (*riot.LeagueList, error)
	Ranking(ctx context.Context, region, queue string) (*domain.Ranking, error)
}

type LiveGames interface {
	Current(ctx context.Context, region, puuid string) (*domain.LiveGame, error)
	Featured(ctx context.Context, region string) *domain.FeaturedGames
	Recommendations(ctx context.Context, region, puuid string) (*domain.LiveRecommendations, error)
}

type PlatformStatus interface {
	Status(ctx context.Context, region string) *domain.PlatformStatus
}

type StaticData interface {
	Version(ctx context.Context) string
	Versions(ctx context.Context) []string
	Champions(ctx context.Context) map[int]ddragon.Champion
	Champion(ctx context.Context, id string) (*ddragon.ChampionDetail, bool)
	Items(ctx context.Context) map[int]ddragon.Item
	SummonerSpells(ctx context.Context) map[int]ddragon.SummonerSpell
	Runes(ctx context.Context) []ddragon.RuneTree
}

type RateLimits interface {
	GetRateLimitInfo() riot.RateLimitInfo
}

type TrackerServer struct {
	profiles      Profiles
	matches       Matches
	leaderboards  Leaderboards
	live          LiveGames
	status        PlatformStatus
	static        StaticData
	limits        RateLimits
	routes        *routing.Table
	defaultRegion string
	sharedCache   bool
	apiKeySet     bool
	logger        zerolog.Logger
}

type Deps struct {
	Profiles     Profiles
	Matches      Matches
	Leaderboards Leaderboards
	LiveGames    LiveGames
	Status       PlatformStatus
	Static       StaticData
	RateLimits   RateLimits
	Routes       *routing.Table
}

func NewTrackerServer(deps Deps, cfg *config.Config, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{
		profiles:      deps.Profiles,
		matches:       deps.Matches,
		leaderboards:  deps.Leaderboards,
		live:          deps.LiveGames,
		status:        deps.Status,
		static:        deps.Static,
		limits:        deps.RateLimits,
		routes:        deps.Routes,
		defaultRegion: strings.ToLower(cfg.DefaultRegion),
		sharedCache:   cfg.RedisURL != "",
		apiKeySet:     cfg.RiotAPIKey != "",
		logger:        logger,
	}
}

// Handler mounts every procedure and returns the path prefix to register it under.
func (s *TrackerServer) Handler() (string, http.Handler) {
	opts := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithInterceptors(logInterceptor(s.logger)),
	}

	mux := http.NewServeMux()
	mux.Handle(ProcedureGetProfile, connect.NewUnaryHandler(ProcedureGetProfile, s.GetProfile, opts...))
	mux.Handle(ProcedureGetMatches, connect.NewUnaryHandler(ProcedureGetMatches, s.GetMatches, opts...))
	mux.Handle(ProcedureGetMatch, connect.NewUnaryHandler(ProcedureGetMatch, s.GetMatch, opts...))
	mux.Handle(ProcedureGetVersion, connect.NewUnaryHandler(ProcedureGetVersion, s.GetVersion, opts...))
	mux.Handle(ProcedureGetChampions, connect.NewUnaryHandler(ProcedureGetChampions, s.GetChampions, opts...))
	mux.Handle(ProcedureGetChampion, connect.NewUnaryHandler(ProcedureGetChampion, s.GetChampion, opts...))
	mux.Handle(ProcedureGetItems, connect.NewUnaryHandler(ProcedureGetItems, s.GetItems, opts...))
	mux.Handle(ProcedureGetSummonerSpells, connect.NewUnaryHandler(ProcedureGetSummonerSpells, s.GetSummonerSpells, opts...))
	mux.Handle(ProcedureGetRunes, connect.NewUnaryHandler(ProcedureGetRunes, s.GetRunes, opts...))
	mux.Handle(ProcedureGetLeague, connect.NewUnaryHandler(ProcedureGetLeague, s.GetLeague, opts...))
	mux.Handle(ProcedureGetRanking, connect.NewUnaryHandler(ProcedureGetRanking, s.GetRanking, opts...))
	mux.Handle(ProcedureGetLiveGame, connect.NewUnaryHandler(ProcedureGetLiveGame, s.GetLiveGame, opts...))
	mux.Handle(ProcedureGetRegions, connect.NewUnaryHandler(ProcedureGetRegions, s.GetRegions, opts...))
	mux.Handle(ProcedureGetMatchTimeline, connect.NewUnaryHandler(ProcedureGetMatchTimeline, s.GetMatchTimeline, opts...))
	mux.Handle(ProcedureGetFeaturedGames, connect.NewUnaryHandler(ProcedureGetFeaturedGames, s.GetFeaturedGames, opts...))
	mux.Handle(ProcedureGetPlatformStatus, connect.NewUnaryHandler(ProcedureGetPlatformStatus, s.GetPlatformStatus, opts...))
	mux.Handle(ProcedureGetLiveRecommendations, connect.NewUnaryHandler(ProcedureGetLiveRecommendations, s.GetLiveRecommendations, opts...))
	return TrackerPath, mux
}

func (s *TrackerServer) GetProfile(ctx context.Context, req *connect.Request[ProfileRequest]) (*connect.Response[domain.ProfileSummary], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}

	var summary *domain.ProfileSummary
	if req.Msg.Puuid != "" {
		summary, err = s.profiles.LoadByPUUID(ctx, region, req.Msg.Puuid)
	} else {
		summary, err = s.profiles.Load(ctx, region, req.Msg.GameName, req.Msg.TagLine)
	}
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(summary), nil
}

func (s *TrackerServer) GetMatches(ctx context.Context, req *connect.Request[MatchesRequest]) (*connect.Response[domain.MatchBatch], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}
	if req.Msg.Puuid == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("puuid is required"))
	}

	batch, err := s.matches.GetMatchHistory(ctx, region, req.Msg.Puuid, riot.MatchIDsQuery{
		Start: req.Msg.Start,
		Count: req.Msg.Count,
		Queue: req.Msg.Queue,
		Type:  req.Msg.Type,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	if batch.Matches == nil {
		batch.Matches = []*riot.Match{}
	}
	return connect.NewResponse(batch), nil
}

func (s *TrackerServer) GetMatch(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[riot.Match], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}
	if req.Msg.MatchID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("matchId is required"))
	}

	match, err := s.matches.GetMatch(ctx, region, req.Msg.MatchID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(match), nil
}

func (s *TrackerServer) GetMatchTimeline(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[riot.Timeline], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}
	if req.Msg.MatchID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("matchId is required"))
	}

	tl, err := s.matches.GetTimeline(ctx, region, req.Msg.MatchID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(tl), nil
}

func (s *TrackerServer) GetVersion(ctx context.Context, _ *connect.Request[StaticRequest]) (*connect.Response[VersionResponse], error) {
	return connect.NewResponse(&VersionResponse{
		Version:  s.static.Version(ctx),
		Versions: s.static.Versions(ctx),
	}), nil
}

func (s *TrackerServer) GetChampions(ctx context.Context, _ *connect.Request[StaticRequest]) (*connect.Response[ChampionsResponse], error) {
	champions := values(s.static.Champions(ctx))
	sort.Slice(champions, func(i, j int) bool { return champions[i].Name < champions[j].Name })
	return connect.NewResponse(&ChampionsResponse{Version: s.static.Version(ctx), Champions: champions}), nil
}

func (s *TrackerServer) GetChampion(ctx context.Context, req *connect.Request[ChampionRequest]) (*connect.Response[ddragon.ChampionDetail], error) {
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id is required"))
	}
	champ, ok := s.static.Champion(ctx, req.Msg.ID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("champion %q not found", req.Msg.ID))
	}
	return connect.NewResponse(champ), nil
}

func (s *TrackerServer) GetItems(ctx context.Context, _ *connect.Request[StaticRequest]) (*connect.Response[ItemsResponse], error) {
	items := values(s.static.Items(ctx))
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return connect.NewResponse(&ItemsResponse{Version: s.static.Version(ctx), Items: items}), nil
}

func (s *TrackerServer) GetSummonerSpells(ctx context.Context, _ *connect.Request[StaticRequest]) (*connect.Response[SummonerSpellsResponse], error) {
	spells := values(s.static.SummonerSpells(ctx))
	sort.Slice(spells, func(i, j int) bool { return spells[i].Key < spells[j].Key })
	return connect.NewResponse(&SummonerSpellsResponse{Version: s.static.Version(ctx), Spells: spells}), nil
}

func (s *TrackerServer) GetRunes(ctx context.Context, _ *connect.Request[StaticRequest]) (*connect.Response[RunesResponse], error) {
	trees := s.static.Runes(ctx)
	if trees == nil {
		trees = []ddragon.RuneTree{}
	}
	return connect.NewResponse(&RunesResponse{Version: s.static.Version(ctx), Trees: trees}), nil
}

func (s *TrackerServer) GetLeague(ctx context.Context, req *connect.Request[LeagueRequest]) (*connect.Response[riot.LeagueList], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}

	list, err := s.leaderboards.League(ctx, region, req.Msg.Tier, req.Msg.Queue)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(list), nil
}

func (s *TrackerServer) GetRanking(ctx context.Context, req *connect.Request[RankingRequest]) (*connect.Response[domain.Ranking], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}

	ranking, err := s.leaderboards.Ranking(ctx, region, req.Msg.Queue)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(ranking), nil
}

func (s *TrackerServer) GetLiveGame(ctx context.Context, req *connect.Request[LiveGameRequest]) (*connect.Response[domain.LiveGame], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}
	if req.Msg.Puuid == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("puuid is required"))
	}

	live, err := s.live.Current(ctx, region, req.Msg.Puuid)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(live), nil
}

func (s *TrackerServer) GetLiveRecommendations(ctx context.Context, req *connect.Request[LiveGameRequest]) (*connect.Response[domain.LiveRecommendations], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}
	if req.Msg.Puuid == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("puuid is required"))
	}

	rec, err := s.live.Recommendations(ctx, region, req.Msg.Puuid)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(rec), nil
}

func (s *TrackerServer) GetFeaturedGames(ctx context.Context, req *connect.Request[RegionRequest]) (*connect.Response[domain.FeaturedGames], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(s.live.Featured(ctx, region)), nil
}

func (s *TrackerServer) GetPlatformStatus(ctx context.Context, req *connect.Request[RegionRequest]) (*connect.Response[domain.PlatformStatus], error) {
	region, err := s.region(req.Msg.Region)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(s.status.Status(ctx, region)), nil
}

func (s *TrackerServer) GetRegions(_ context.Context, _ *connect.Request[StaticRequest]) (*connect.Response[RegionsResponse], error) {
	return connect.NewResponse(&RegionsResponse{Default: s.defaultRegion, Regions: s.routes.Regions()}), nil
}

// Health reports configuration and the last rate-limit headers seen from Riot.
func (s *TrackerServer) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := json.Marshal(HealthResponse{
		Status:        "ok",
		DefaultRegion: s.defaultRegion,
		SharedCache:   s.sharedCache,
		APIKeySet:     s.apiKeySet,
		RateLimit:     s.limits.GetRateLimitInfo(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// region falls back to the default platform when empty and rejects platforms the routing table does not know.
func (s *TrackerServer) region(region string) (string, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	if region == "" {
		region = s.defaultRegion
	}
	if !s.routes.Known(region) {
		return "", connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown region %q", region))
	}
	return region, nil
}

func values[V any](m map[int]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
