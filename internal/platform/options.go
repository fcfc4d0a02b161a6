package platform

import (
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/folio/internal/metrics"
	"github.com/aretw0/folio/pkg/core"
)

// options holds the internal configuration for a folio site.
type options struct {
	logger        *slog.Logger
	recorder      metrics.Recorder
	cache         bool
	locales       []string
	defaultLocale string
	now           func() time.Time
	blogDir       string
	portfolioDir  string
	include       string
	errorHandler  func(error)

	blogRepo      core.Repository
	portfolioRepo core.Repository
}

// Option defines a functional option for configuring a site.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		locales:       []string{"en", "th"},
		defaultLocale: "en",
		blogDir:       "blog",
		portfolioDir:  "portfolio",
	}
}

// WithLogger sets the logger for the loaders and the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sets the metrics recorder. Defaults to a no-op recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithCache enables the in-memory read-through cache.
// Entries are keyed by slug and served while the file's mtime and size are unchanged.
func WithCache(enabled bool) Option {
	return func(o *options) {
		o.cache = enabled
	}
}

// WithLocales sets the locales, in listing order. For the portfolio they are
// also the directory names scanned.
func WithLocales(locales ...string) Option {
	return func(o *options) {
		o.locales = slices.Clone(locales)
	}
}

// WithDefaultLocale sets the locale assigned to blog posts that name none.
func WithDefaultLocale(locale string) Option {
	return func(o *options) {
		o.defaultLocale = locale
	}
}

// WithClock overrides the clock used for the portfolio date default.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithBlogDir sets the blog directory, relative to the content root unless absolute.
func WithBlogDir(dir string) Option {
	return func(o *options) {
		o.blogDir = dir
	}
}

// WithPortfolioDir sets the portfolio directory, relative to the content root unless absolute.
func WithPortfolioDir(dir string) Option {
	return func(o *options) {
		o.portfolioDir = dir
	}
}

// WithInclude restricts which files count as content (doublestar glob over
// paths relative to the collection directory). Defaults to "**/*.md".
func WithInclude(pattern string) Option {
	return func(o *options) {
		o.include = pattern
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while watching.
// Without it, errors are logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithRepositories injects custom storage for both collections (e.g. a mock).
// If provided, the filesystem adapter is skipped and the root is ignored.
func WithRepositories(blog, portfolio core.Repository) Option {
	return func(o *options) {
		o.blogRepo = blog
		o.portfolioRepo = portfolio
	}
}
