// Package ddragon serves per-patch static game data from Data Dragon, cached in process.
// Lookups never fail: on upstream errors they degrade to the fallback version or empty collections.
package ddragon

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"lol-tracker/internal/cache"
	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const versionsKey = "versions"

// Data Dragon champion ids are alphanumeric; anything else never reaches the CDN path.
var championID = regexp.MustCompile(`^[A-Za-z0-9]+$`)

type Service struct {
	base    string
	locale  string
	timeout time.Duration
	client  *fasthttp.Client
	logger  zerolog.Logger

	versions  *cache.TTL[[]string]
	champions *cache.TTL[map[int]Champion]
	details   *cache.TTL[*ChampionDetail]
	items     *cache.TTL[map[int]Item]
	spells    *cache.TTL[map[int]SummonerSpell]
	runes     *cache.TTL[[]RuneTree]

	mu     sync.RWMutex
	pinned string
}

type Option func(*Service)

func WithLocale(locale string) Option {
	return func(s *Service) { s.locale = locale }
}

func WithTTL(ttl time.Duration, opts ...cache.Option) Option {
	return func(s *Service) { s.initCaches(ttl, opts...) }
}

func New(base string, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		base:    strings.TrimRight(base, "/"),
		locale:  "en_US",
		timeout: constants.StaticTimeout,
		client: &fasthttp.Client{
			ReadTimeout:         constants.StaticTimeout,
			WriteTimeout:        constants.StaticTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("component", "ddragon").Logger(),
	}
	s.initCaches(constants.StaticCacheTTL)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewService(cfg *config.Config, logger zerolog.Logger) *Service {
	return New(cfg.DDragonBase, logger, WithLocale(cfg.DDragonLocale), WithTTL(cfg.StaticCacheTTL))
}

func (s *Service) initCaches(ttl time.Duration, opts ...cache.Option) {
	s.versions = cache.New[[]string](ttl, opts...)
	s.champions = cache.New[map[int]Champion](ttl, opts...)
	s.details = cache.New[*ChampionDetail](ttl, opts...)
	s.items = cache.New[map[int]Item](ttl, opts...)
	s.spells = cache.New[map[int]SummonerSpell](ttl, opts...)
	s.runes = cache.New[[]RuneTree](ttl, opts...)
}

// Version returns the current patch. The first resolved version stays pinned until RefreshVersion.
func (s *Service) Version(ctx context.Context) string {
	s.mu.RLock()
	pinned := s.pinned
	s.mu.RUnlock()
	if pinned != "" {
		return pinned
	}

	versions, err := s.loadVersions(ctx)
	if err != nil || len(versions) == 0 {
		s.logger.Warn().Err(err).Str("fallback", constants.FallbackVersion).Msg("using fallback version")
		return constants.FallbackVersion
	}

	s.mu.Lock()
	if s.pinned == "" {
		s.pinned = versions[0]
	}
	pinned = s.pinned
	s.mu.Unlock()
	return pinned
}

func (s *Service) Versions(ctx context.Context) []string {
	versions, err := s.loadVersions(ctx)
	if err != nil || len(versions) == 0 {
		s.logger.Warn().Err(err).Msg("failed to fetch versions")
		return []string{constants.FallbackVersion}
	}
	return versions
}

// RefreshVersion drops the pinned version and the cached list, then resolves the patch again.
// Data cached under the previous version is left to expire.
func (s *Service) RefreshVersion(ctx context.Context) string {
	s.mu.Lock()
	previous := s.pinned
	s.pinned = ""
	s.mu.Unlock()
	s.versions.Delete(versionsKey)

	current := s.Version(ctx)
	if previous != "" && previous != current {
		s.logger.Info().Str("previous", previous).Str("current", current).Msg("patch version changed")
	}
	return current
}

func (s *Service) loadVersions(ctx context.Context) ([]string, error) {
	return s.versions.Load(ctx, versionsKey, func(ctx context.Context) ([]string, error) {
		versions, err := get[[]string](ctx, s, s.base+"/api/versions.json")
		if err != nil {
			return nil, err
		}
		if len(*versions) == 0 {
			return nil, fmt.Errorf("empty version list")
		}
		return *versions, nil
	})
}

func (s *Service) dataURL(version, file string) string {
	return fmt.Sprintf("%s/cdn/%s/data/%s/%s", s.base, version, s.locale, file)
}

// Champions is keyed by the numeric champion key used in match data.
func (s *Service) Champions(ctx context.Context) map[int]Champion {
	version := s.Version(ctx)
	champions, err := s.champions.Load(ctx, "champions_"+version, func(ctx context.Context) (map[int]Champion, error) {
		env, err := get[dataEnvelope[rawChampion]](ctx, s, s.dataURL(version, "champion.json"))
		if err != nil {
			return nil, err
		}
		out := make(map[int]Champion, len(env.Data))
		for _, raw := range env.Data {
			c, ok := raw.toChampion()
			if !ok {
				continue
			}
			out[c.Key] = c
		}
		return out, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("version", version).Msg("failed to fetch champions")
		return map[int]Champion{}
	}
	return champions
}

// Champion returns full detail for a champion by its Data Dragon id (e.g. "Ahri").
// Malformed ids and failed fetches are reported as absent.
func (s *Service) Champion(ctx context.Context, id string) (*ChampionDetail, bool) {
	if !championID.MatchString(id) {
		return nil, false
	}
	version := s.Version(ctx)
	detail, err := s.details.Load(ctx, fmt.Sprintf("champion_%s_%s", version, id), func(ctx context.Context) (*ChampionDetail, error) {
		env, err := get[dataEnvelope[rawChampionDetail]](ctx, s, s.dataURL(version, "champion/"+id+".json"))
		if err != nil {
			return nil, err
		}
		raw, ok := env.Data[id]
		if !ok {
			return nil, fmt.Errorf("champion %q missing from payload", id)
		}
		c, _ := raw.toChampion()
		return &ChampionDetail{
			Champion: c,
			Lore:     raw.Lore,
			Blurb:    raw.Blurb,
			Passive:  raw.Passive,
			Spells:   raw.Spells,
			Stats:    raw.Stats,
		}, nil
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("champion", id).Msg("champion not available")
		return nil, false
	}
	return detail, true
}

func (s *Service) Items(ctx context.Context) map[int]Item {
	version := s.Version(ctx)
	items, err := s.items.Load(ctx, "items_"+version, func(ctx context.Context) (map[int]Item, error) {
		env, err := get[dataEnvelope[Item]](ctx, s, s.dataURL(version, "item.json"))
		if err != nil {
			return nil, err
		}
		out := make(map[int]Item, len(env.Data))
		for key, item := range env.Data {
			id, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			item.ID = id
			out[id] = item
		}
		return out, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("version", version).Msg("failed to fetch items")
		return map[int]Item{}
	}
	return items
}

// SummonerSpells is keyed by the numeric spell key used in match data.
func (s *Service) SummonerSpells(ctx context.Context) map[int]SummonerSpell {
	version := s.Version(ctx)
	spells, err := s.spells.Load(ctx, "spells_"+version, func(ctx context.Context) (map[int]SummonerSpell, error) {
		env, err := get[dataEnvelope[rawSpell]](ctx, s, s.dataURL(version, "summoner.json"))
		if err != nil {
			return nil, err
		}
		out := make(map[int]SummonerSpell, len(env.Data))
		for _, raw := range env.Data {
			key, err := strconv.Atoi(raw.Key)
			if err != nil {
				continue
			}
			out[key] = SummonerSpell{
				ID:           raw.ID,
				Key:          key,
				Name:         raw.Name,
				Description:  raw.Description,
				CooldownBurn: raw.CooldownBurn,
				Image:        raw.Image,
			}
		}
		return out, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("version", version).Msg("failed to fetch summoner spells")
		return map[int]SummonerSpell{}
	}
	return spells
}

func (s *Service) Runes(ctx context.Context) []RuneTree {
	version := s.Version(ctx)
	trees, err := s.runes.Load(ctx, "runes_"+version, func(ctx context.Context) ([]RuneTree, error) {
		trees, err := get[[]RuneTree](ctx, s, s.dataURL(version, "runesReforged.json"))
		if err != nil {
			return nil, err
		}
		return *trees, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("version", version).Msg("failed to fetch runes")
		return []RuneTree{}
	}
	return trees
}

func (r rawChampion) toChampion() (Champion, bool) {
	key, err := strconv.Atoi(r.Key)
	if err != nil {
		return Champion{}, false
	}
	return Champion{
		ID:    r.ID,
		Key:   key,
		Name:  r.Name,
		Title: r.Title,
		Tags:  r.Tags,
		Image: r.Image,
	}, true
}

func get[T any](ctx context.Context, s *Service, url string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline := time.Now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("ddragon request %s: %w", url, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("ddragon request %s: status %d", url, resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("ddragon decode %s: %w", url, err)
	}
	return &result, nil
}
