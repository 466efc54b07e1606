// Package fetcher retrieves batches of upstream resources under the Riot rate limit.
package fetcher

import (
	"context"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/riot"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type Options struct {
	Concurrency int
	// Pacing is the minimum gap between two consecutive upstream calls; 0 disables it.
	Pacing time.Duration
	Policy Policy
}

type Fetcher struct {
	policy      Policy
	concurrency int
	limiter     *rate.Limiter
	logger      zerolog.Logger
}

func New(opts Options, logger zerolog.Logger) *Fetcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = constants.MatchFetchConcurrency
	}
	if opts.Policy.MaxAttempts <= 0 {
		opts.Policy = DefaultPolicy()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.Pacing > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Pacing), 1)
	}

	return &Fetcher{
		policy:      opts.Policy,
		concurrency: opts.Concurrency,
		limiter:     limiter,
		logger:      logger.With().Str("component", "fetcher").Logger(),
	}
}

func NewFetcher(cfg *config.Config, logger zerolog.Logger) *Fetcher {
	return New(Options{
		Concurrency: cfg.MatchFetchConcurrency,
		Pacing:      cfg.MatchFetchPacing,
		Policy:      DefaultPolicy(),
	}, logger)
}

// Batch is the outcome of one Fetch. Items keep the order of the requested ids.
type Batch[T any] struct {
	Items   []T
	IDs     []string
	Total   int
	Skipped []string
	// RateLimited is set when nothing was retrieved and at least one id failed on the rate limit.
	RateLimited bool
}

type slot[T any] struct {
	item T
	err  error
}

// Fetch calls fn for every id with bounded concurrency. Failed ids are skipped; a partial batch is not an error.
func Fetch[T any](ctx context.Context, f *Fetcher, ids []string, fn func(context.Context, string) (T, error)) Batch[T] {
	return FetchThrough(ctx, f, ids, nil, fn)
}

// FetchThrough is Fetch with a cache in front: ids found by lookup skip pacing and retries.
func FetchThrough[T any](
	ctx context.Context,
	f *Fetcher,
	ids []string,
	lookup func(context.Context, string) (T, bool),
	fn func(context.Context, string) (T, error),
) Batch[T] {
	slots := make([]slot[T], len(ids))

	// plain group: one failed id must not cancel its siblings
	var g errgroup.Group
	g.SetLimit(f.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			if lookup != nil {
				if item, ok := lookup(ctx, id); ok {
					slots[i].item = item
					return nil
				}
			}
			slots[i].err = f.policy.Do(ctx, func(ctx context.Context) error {
				if err := f.limiter.Wait(ctx); err != nil {
					return err
				}
				item, err := fn(ctx, id)
				if err != nil {
					return err
				}
				slots[i].item = item
				return nil
			})
			return nil
		})
	}
	_ = g.Wait()

	batch := Batch[T]{
		Items: make([]T, 0, len(ids)),
		IDs:   make([]string, 0, len(ids)),
		Total: len(ids),
	}
	rateLimited := 0
	for i, s := range slots {
		if s.err != nil {
			batch.Skipped = append(batch.Skipped, ids[i])
			if riot.IsRateLimited(s.err) {
				rateLimited++
			}
			f.logger.Warn().
				Err(s.err).
				Str("id", ids[i]).
				Int("status", riot.StatusOf(s.err)).
				Msg("skipping item")
			continue
		}
		batch.Items = append(batch.Items, s.item)
		batch.IDs = append(batch.IDs, ids[i])
	}
	batch.RateLimited = len(batch.Items) == 0 && rateLimited > 0

	if len(batch.Skipped) > 0 {
		f.logger.Info().
			Int("total", batch.Total).
			Int("fetched", len(batch.Items)).
			Int("rate_limited", rateLimited).
			Msg("partial batch")
	}
	return batch
}
