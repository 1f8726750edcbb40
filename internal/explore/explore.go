// Package explore turns favorite characters into anime recommendations.
package explore

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/f3rmion/kyara/internal/favorites"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/logging"
)

const (
	DefaultMaxCharacters = 5
	DefaultMaxAnime      = 12
	DefaultDelay         = 333 * time.Millisecond
)

// Source is the subset of the API client the aggregator needs.
type Source interface {
	FetchCharacterDetail(ctx context.Context, id int) (*jikan.Character, error)
	FetchAnimeDetail(ctx context.Context, id int) *jikan.Anime
}

// Aggregator collects the anime that favorite characters appear in.
type Aggregator struct {
	src           Source
	maxCharacters int
	maxAnime      int
	delay         time.Duration
	concurrency   int
	log           zerolog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

func WithMaxCharacters(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxCharacters = n
		}
	}
}

func WithMaxAnime(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxAnime = n
		}
	}
}

// WithDelay sets the minimum spacing between character detail requests.
func WithDelay(d time.Duration) Option {
	return func(a *Aggregator) {
		if d >= 0 {
			a.delay = d
		}
	}
}

// WithConcurrency caps simultaneous anime requests. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n >= 0 {
			a.concurrency = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(a *Aggregator) { a.log = l }
}

// New returns an aggregator reading from src.
func New(src Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		src:           src,
		maxCharacters: DefaultMaxCharacters,
		maxAnime:      DefaultMaxAnime,
		delay:         DefaultDelay,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate looks up the first favorites one at a time, no faster than one
// request per delay, gathers the distinct anime they appear in, and fetches
// those concurrently. Anything that fails to resolve is left out, so the
// result may be shorter than the anime cap or empty. It never returns an
// error; a cancelled context returns whatever was resolved by then.
func (a *Aggregator) Aggregate(ctx context.Context, records []favorites.Record) []jikan.Anime {
	log := logging.Ctx(ctx, a.log)
	if len(records) == 0 {
		return []jikan.Anime{}
	}
	if len(records) > a.maxCharacters {
		records = records[:a.maxCharacters]
	}

	ids := a.collectAnimeIDs(ctx, log, records)
	if len(ids) > a.maxAnime {
		ids = ids[:a.maxAnime]
	}
	if len(ids) == 0 {
		return []jikan.Anime{}
	}

	resolved := make([]*jikan.Anime, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, id := range ids {
		g.Go(func() error {
			resolved[i] = a.src.FetchAnimeDetail(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]jikan.Anime, 0, len(resolved))
	for _, anime := range resolved {
		if anime != nil {
			out = append(out, *anime)
		}
	}
	log.Info().
		Int("characters", len(records)).
		Int("anime_ids", len(ids)).
		Int("resolved", len(out)).
		Msg("explorer recommendations ready")
	return out
}

// collectAnimeIDs fetches each character's detail sequentially and returns
// the anime ids in first-seen order without duplicates.
func (a *Aggregator) collectAnimeIDs(ctx context.Context, log *zerolog.Logger, records []favorites.Record) []int {
	var limiter *rate.Limiter
	if a.delay > 0 {
		limiter = rate.NewLimiter(rate.Every(a.delay), 1)
	}

	seen := make(map[int]struct{})
	var ids []int
	for _, r := range records {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				log.Debug().Err(err).Msg("explorer pacing interrupted")
				break
			}
		} else if ctx.Err() != nil {
			break
		}

		ch, err := a.src.FetchCharacterDetail(ctx, r.MalID)
		if err != nil {
			log.Warn().Err(err).Int("character_id", r.MalID).Msg("skipping character")
			continue
		}
		for _, id := range ch.AnimeIDs() {
			if _, dup := seen[id]; dup || id == 0 {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
