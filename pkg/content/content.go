// Package content exposes the blog and portfolio collections as typed,
// queryable records.
//
// Loaders never return errors and never panic on bad content: failures are
// logged with their kind and turned into an empty list or a nil item. The
// Load* variants return the classified error for callers that need it.
package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/folio/internal/logfields"
	"github.com/aretw0/folio/internal/metrics"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/typed"
)

// DefaultRelatedLimit caps ListRelated when the caller passes limit <= 0.
const DefaultRelatedLimit = 3

// DefaultCategory is assigned to items without a category.
const DefaultCategory = "General"

// DefaultLocale is used when neither the path nor the frontmatter names a locale.
const DefaultLocale = "en"

// Collection labels used in logs, metrics and watch events.
const (
	CollectionBlog      = "blog"
	CollectionPortfolio = "portfolio"
)

// DefaultLocales returns the locales of the bilingual site, in listing order.
func DefaultLocales() []string {
	return []string{"en", "th"}
}

// Config carries the shared dependencies of the loaders. Zero values are usable.
type Config struct {
	Logger        *slog.Logger
	Recorder      metrics.Recorder
	Locales       []string
	DefaultLocale string
	// Now supplies the load time used for the portfolio date default.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Recorder == nil {
		c.Recorder = metrics.NoopRecorder{}
	}
	if len(c.Locales) == 0 {
		c.Locales = DefaultLocales()
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = DefaultLocale
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// collection holds the swallow-and-log plumbing shared by both loaders.
type collection[T any] struct {
	name   string
	repo   *typed.Repository[T]
	logger *slog.Logger
	date   func(*T) string
}

func newCollection[T any](name string, repo core.Repository, normalize typed.Normalizer[T], date func(*T) string, cfg Config) collection[T] {
	recorder := cfg.Recorder
	return collection[T]{
		name: name,
		repo: typed.NewRepository[T](repo, normalize).Observe(func(_ string, d time.Duration, err error) {
			recorder.ObserveLoadDuration(name, d)
			recorder.IncLoadResult(name, core.Kind(err))
		}),
		logger: cfg.Logger,
		date:   date,
	}
}

func (c *collection[T]) slugs(ctx context.Context) []string {
	slugs, err := c.repo.Slugs(ctx)
	if err != nil {
		c.warn("failed to list slugs", "", err)
		return []string{}
	}
	return slugs
}

func (c *collection[T]) get(ctx context.Context, slug string) *typed.Item[T] {
	item, err := c.repo.Get(ctx, slug)
	if err != nil {
		c.warn("failed to load item", slug, err)
		return nil
	}
	return item
}

// all loads every item, drops the ones that fail and sorts newest first.
func (c *collection[T]) all(ctx context.Context) []*typed.Item[T] {
	items, err := c.repo.List(ctx, func(slug string, err error) {
		c.warn("failed to load item", slug, err)
	})
	if err != nil {
		c.warn("failed to list items", "", err)
		return []*typed.Item[T]{}
	}
	sortByDate(items, c.date)
	return items
}

func (c *collection[T]) filter(ctx context.Context, keep func(*T) bool) []*typed.Item[T] {
	all := c.all(ctx)
	out := make([]*typed.Item[T], 0, len(all))
	for _, item := range all {
		if keep(&item.Metadata) {
			out = append(out, item)
		}
	}
	return out
}

func (c *collection[T]) warn(msg, slug string, err error) {
	attrs := []any{logfields.Collection(c.name), logfields.Kind(core.Kind(err)), logfields.Error(err)}
	if slug != "" {
		attrs = append(attrs, logfields.Slug(slug))
	}
	c.logger.Warn(msg, attrs...)
}

// limitOrDefault maps non-positive limits to DefaultRelatedLimit.
func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultRelatedLimit
	}
	return limit
}
