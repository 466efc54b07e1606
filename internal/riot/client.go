// Package riot is a typed client for the Riot Games REST API.
package riot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const (
	TierChallenger  = "challenger"
	TierGrandmaster = "grandmaster"
	TierMaster      = "master"
)

type Client struct {
	apiKey  string
	apiBase string
	// baseURL overrides both platform and regional hosts when set
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	AppLimit         string    `json:"app_limit,omitempty"`
	AppLimitCount    string    `json:"app_limit_count,omitempty"`
	MethodLimitCount string    `json:"method_limit_count,omitempty"`
	RetryAfter       int       `json:"retry_after,omitempty"`
	LastStatus       int       `json:"last_status,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

func WithAPIBase(apiBase string) Option {
	return func(c *Client) { c.apiBase = apiBase }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		apiBase: "api.riotgames.com",
		timeout: constants.UpstreamTimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.UpstreamTimeout,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewClient(cfg *config.Config) *Client {
	return New(cfg.RiotAPIKey, WithAPIBase(cfg.RiotAPIBase))
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if v := string(resp.Header.Peek("X-App-Rate-Limit")); v != "" {
		c.rateLimit.AppLimit = v
	}
	if v := string(resp.Header.Peek("X-App-Rate-Limit-Count")); v != "" {
		c.rateLimit.AppLimitCount = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit-Count")); v != "" {
		c.rateLimit.MethodLimitCount = v
	}
	c.rateLimit.RetryAfter = 0
	if v := string(resp.Header.Peek("Retry-After")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.rateLimit.RetryAfter = secs
		}
	}
	c.rateLimit.LastStatus = resp.StatusCode()
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *Client) platformURL(region string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.%s", region, c.apiBase)
}

func (c *Client) regionalURL(routing string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.%s", routing, c.apiBase)
}

func (c *Client) AccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalURL(routing), url.PathEscape(gameName), url.PathEscape(tagLine))
	return doValidated[Account](ctx, c, u)
}

func (c *Client) AccountByPUUID(ctx context.Context, routing, puuid string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s", c.regionalURL(routing), url.PathEscape(puuid))
	return doValidated[Account](ctx, c, u)
}

func (c *Client) SummonerByPUUID(ctx context.Context, region, puuid string) (*Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformURL(region), url.PathEscape(puuid))
	return doValidated[Summoner](ctx, c, u)
}

func (c *Client) SummonerByID(ctx context.Context, region, summonerID string) (*Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/%s", c.platformURL(region), url.PathEscape(summonerID))
	return doValidated[Summoner](ctx, c, u)
}

func (c *Client) MatchIDsByPUUID(ctx context.Context, routing, puuid string, q MatchIDsQuery) ([]string, error) {
	params := url.Values{}
	if q.Start > 0 {
		params.Set("start", strconv.Itoa(q.Start))
	}
	if q.Count > 0 {
		params.Set("count", strconv.Itoa(q.Count))
	}
	if q.Queue > 0 {
		params.Set("queue", strconv.Itoa(q.Queue))
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}

	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids", c.regionalURL(routing), url.PathEscape(puuid))
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *Client) Match(ctx context.Context, routing, matchID string) (*Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalURL(routing), url.PathEscape(matchID))
	return doValidated[Match](ctx, c, u)
}

func (c *Client) MatchTimeline(ctx context.Context, routing, matchID string) (*Timeline, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.regionalURL(routing), url.PathEscape(matchID))
	return doValidated[Timeline](ctx, c, u)
}

func (c *Client) LeagueEntriesByPUUID(ctx context.Context, region, puuid string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformURL(region), url.PathEscape(puuid))
	entries, err := doRequest[[]LeagueEntry](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func IsApexTier(tier string) bool {
	switch strings.ToLower(tier) {
	case TierChallenger, TierGrandmaster, TierMaster:
		return true
	}
	return false
}

// ApexLeague fetches the challenger, grandmaster or master league of a queue.
func (c *Client) ApexLeague(ctx context.Context, region, tier, queue string) (*LeagueList, error) {
	if !IsApexTier(tier) {
		return nil, InvalidRequest(fmt.Errorf("unknown apex tier %q", tier))
	}
	tier = strings.ToLower(tier)
	u := fmt.Sprintf("%s/lol/league/v4/%sleagues/by-queue/%s", c.platformURL(region), tier, url.PathEscape(queue))
	return doRequest[LeagueList](ctx, c, u)
}

func (c *Client) ChallengerLeague(ctx context.Context, region, queue string) (*LeagueList, error) {
	return c.ApexLeague(ctx, region, TierChallenger, queue)
}

func (c *Client) GrandmasterLeague(ctx context.Context, region, queue string) (*LeagueList, error) {
	return c.ApexLeague(ctx, region, TierGrandmaster, queue)
}

func (c *Client) MasterLeague(ctx context.Context, region, queue string) (*LeagueList, error) {
	return c.ApexLeague(ctx, region, TierMaster, queue)
}

// ChampionMasteries lists masteries by points; top > 0 limits the result to the top N.
func (c *Client) ChampionMasteries(ctx context.Context, region, puuid string, top int) ([]ChampionMastery, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", c.platformURL(region), url.PathEscape(puuid))
	if top > 0 {
		u += fmt.Sprintf("/top?count=%d", top)
	}
	masteries, err := doRequest[[]ChampionMastery](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

// ActiveGame returns a not-found error when the player is not in a game.
func (c *Client) ActiveGame(ctx context.Context, region, puuid string) (*CurrentGame, error) {
	u := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", c.platformURL(region), url.PathEscape(puuid))
	return doRequest[CurrentGame](ctx, c, u)
}

func (c *Client) FeaturedGames(ctx context.Context, region string) (*FeaturedGames, error) {
	return doRequest[FeaturedGames](ctx, c, c.platformURL(region)+"/lol/spectator/v5/featured-games")
}

func (c *Client) PlatformStatus(ctx context.Context, region string) (*PlatformStatus, error) {
	return doValidated[PlatformStatus](ctx, c, c.platformURL(region)+"/lol/status/v4/platform-data")
}

type validator interface {
	validate() error
}

func doValidated[T any, PT interface {
	*T
	validator
}](ctx context.Context, c *Client, u string) (*T, error) {
	result, err := doRequest[T](ctx, c, u)
	if err != nil {
		return nil, err
	}
	if err := PT(result).validate(); err != nil {
		return nil, newTransportError(u, fmt.Errorf("invalid payload: %w", err))
	}
	return result, nil
}

func doRequest[T any](ctx context.Context, c *Client, u string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, newTransportError(u, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(u)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			err = fmt.Errorf("request timed out: %w", err)
		}
		return nil, newTransportError(u, err)
	}

	c.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, newStatusError(resp.StatusCode(), u)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, newTransportError(u, fmt.Errorf("decode response: %w", err))
	}
	return &result, nil
}
