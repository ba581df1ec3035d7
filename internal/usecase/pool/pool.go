package usecase_pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mkhalturin/filmatch/core/internal/model"
)

var (
	ErrPoolGeneration = errors.New("pool generation failed")
	ErrInternal       = errors.New("internal error")
)

// Tier targets: up to 15 items matching every genre, filled to 30 with
// any-genre matches, filled to 50 with popular fallback.
const (
	tier1Target = 15
	tier2Target = 30
)

//go:generate mockery --name=ContentSource --output=./mocks/pool/source --filename=source.go
type ContentSource interface {
	Discover(ctx context.Context, q model.DiscoverQuery) ([]model.ContentItem, error)
	Genres(ctx context.Context, mediaType model.MediaType) ([]model.Genre, error)
}

type Builder struct {
	source ContentSource
	logger *slog.Logger
}

type BuilderOption func(*Builder)

func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

func New(source ContentSource, opts ...BuilderOption) *Builder {
	b := &Builder{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// strategy is one rung of the fallback ladder. A strategy either yields a
// full pool or reports why it could not.
type strategy struct {
	name string
	run  func(ctx context.Context) ([]model.ContentItem, error)
}

// BuildPool assembles the room's fixed sequence of exactly PoolSize unique
// items. Strategies are tried in order; the first full pool wins. Only
// total exhaustion is a hard failure.
func (b *Builder) BuildPool(ctx context.Context, criteria model.FilterCriteria) ([]model.PoolEntry, error) {
	if err := criteria.Validate(); err != nil {
		return nil, errors.Join(ErrPoolGeneration, err)
	}

	strategies := []strategy{
		{name: "tiered", run: func(ctx context.Context) ([]model.ContentItem, error) {
			return b.tiered(ctx, criteria)
		}},
		{name: "legacy", run: func(ctx context.Context) ([]model.ContentItem, error) {
			return b.legacy(ctx, criteria)
		}},
		{name: "emergency", run: func(ctx context.Context) ([]model.ContentItem, error) {
			return EmergencyPool(), nil
		}},
	}

	items, err := b.firstSuccess(ctx, strategies)
	if err != nil {
		return nil, err
	}

	// Insertion order becomes the immutable sequence order.
	entries := make([]model.PoolEntry, 0, model.PoolSize)
	for i, item := range items {
		entry, err := model.NewPoolEntry(i, item)
		if err != nil {
			return nil, errors.Join(ErrInternal, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (b *Builder) firstSuccess(ctx context.Context, strategies []strategy) ([]model.ContentItem, error) {
	errs := make([]error, 0, len(strategies))
	for _, s := range strategies {
		items, err := s.run(ctx)
		if err != nil {
			b.logger.Warn("pool strategy failed",
				slog.String("strategy", s.name),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		if len(items) != model.PoolSize {
			errs = append(errs, fmt.Errorf("%s: produced %d of %d items", s.name, len(items), model.PoolSize))
			continue
		}
		if s.name != "tiered" {
			b.logger.Warn("pool built by fallback strategy", slog.String("strategy", s.name))
		}
		return items, nil
	}
	return nil, errors.Join(append([]error{ErrPoolGeneration}, errs...)...)
}

// tiered runs the 3-tier priority build, growing the exclusion set tier by
// tier, with a broadened retry against starvation.
func (b *Builder) tiered(ctx context.Context, criteria model.FilterCriteria) ([]model.ContentItem, error) {
	genres := RemapGenres(criteria.GenreIDs, criteria.MediaType)

	selected := make([]model.ContentItem, 0, model.PoolSize)
	exclude := make(map[int64]struct{}, model.PoolSize)

	if len(genres) > 0 {
		tier1, err := b.source.Discover(ctx, model.DiscoverQuery{
			MediaType: criteria.MediaType,
			GenreIDs:  genres,
			Mode:      model.GenreModeAll,
			Sort:      model.SortQuality,
			Exclude:   exclude,
			Limit:     tier1Target,
		})
		if err != nil {
			return nil, err
		}
		tier1 = viable(tier1)
		if len(tier1) > tier1Target {
			tier1 = tier1[:tier1Target]
		}
		// Randomize so rooms with identical filters do not all open on
		// the same "most popular" item.
		rand.Shuffle(len(tier1), func(i, j int) {
			tier1[i], tier1[j] = tier1[j], tier1[i]
		})
		selected = appendUnique(selected, tier1, exclude, model.TierAllGenres, model.PoolSize)
	}

	if len(genres) > 0 && len(selected) < tier2Target {
		tier2, err := b.source.Discover(ctx, model.DiscoverQuery{
			MediaType: criteria.MediaType,
			GenreIDs:  genres,
			Mode:      model.GenreModeAny,
			Sort:      model.SortPopularity,
			Exclude:   exclude,
			Limit:     tier2Target - len(selected),
		})
		if err != nil {
			return nil, err
		}
		selected = appendUnique(selected, viable(tier2), exclude, model.TierAnyGenre, tier2Target)
	}

	if len(selected) < model.PoolSize {
		// Tier 3 keeps the OR genre filter when genres were given so the
		// remainder stays relevant.
		tier3, err := b.source.Discover(ctx, model.DiscoverQuery{
			MediaType: criteria.MediaType,
			GenreIDs:  genres,
			Mode:      model.GenreModeAny,
			Sort:      model.SortPopularity,
			Exclude:   exclude,
			Limit:     model.PoolSize - len(selected),
		})
		if err != nil {
			return nil, err
		}
		selected = appendUnique(selected, viable(tier3), exclude, model.TierPopular, model.PoolSize)
	}

	if len(selected) < model.PoolSize {
		// Starvation: one broadened pass without any genre filter before
		// giving up on this strategy.
		broad, err := b.source.Discover(ctx, model.DiscoverQuery{
			MediaType: criteria.MediaType,
			Sort:      model.SortPopularity,
			Exclude:   exclude,
			Limit:     model.PoolSize - len(selected),
		})
		if err != nil {
			return nil, err
		}
		selected = appendUnique(selected, viable(broad), exclude, model.TierPopular, model.PoolSize)
	}

	if len(selected) != model.PoolSize {
		return nil, fmt.Errorf("starved at %d of %d items", len(selected), model.PoolSize)
	}
	return selected, nil
}

// legacy is the single-tier build used before the priority algorithm: one
// popularity query for the whole media type, no genre filter.
func (b *Builder) legacy(ctx context.Context, criteria model.FilterCriteria) ([]model.ContentItem, error) {
	exclude := make(map[int64]struct{}, model.PoolSize)
	items, err := b.source.Discover(ctx, model.DiscoverQuery{
		MediaType: criteria.MediaType,
		Sort:      model.SortPopularity,
		Exclude:   exclude,
		Limit:     model.PoolSize,
	})
	if err != nil {
		return nil, err
	}

	selected := make([]model.ContentItem, 0, model.PoolSize)
	return appendUnique(selected, viable(items), exclude, model.TierPopular, model.PoolSize), nil
}

// viable drops items that would violate cache entry invariants.
func viable(items []model.ContentItem) []model.ContentItem {
	out := items[:0]
	for _, item := range items {
		if item.Title == "" || item.Overview == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func appendUnique(dst, src []model.ContentItem, exclude map[int64]struct{}, tier model.SourceTier, limit int) []model.ContentItem {
	for _, item := range src {
		if len(dst) >= limit {
			break
		}
		if _, dup := exclude[item.ID]; dup {
			continue
		}
		exclude[item.ID] = struct{}{}
		item.Tier = tier
		dst = append(dst, item)
	}
	return dst
}
