package folio

import (
	"log/slog"
	"time"

	"github.com/aretw0/folio/internal/metrics"
	"github.com/aretw0/folio/internal/platform"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/core"
)

// --- Types ---

// Site groups the blog and portfolio loaders of one content root.
type Site = content.Site

// Post is a blog post; Project is a portfolio case study.
type (
	Post              = content.Post
	Project           = content.Project
	BlogMetadata      = content.BlogMetadata
	PortfolioMetadata = content.PortfolioMetadata
)

// Recorder receives load, cache and watch metrics.
type Recorder = metrics.Recorder

// --- Configuration ---

// Option defines a functional option for configuring a Site.
type Option = platform.Option

// WithLogger sets the logger used by the loaders and the watcher.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithCache enables the mtime-keyed read-through cache.
func WithCache(enabled bool) Option {
	return platform.WithCache(enabled)
}

// WithLocales sets the site locales, in listing order.
func WithLocales(locales ...string) Option {
	return platform.WithLocales(locales...)
}

// WithDefaultLocale sets the locale of blog posts that name none.
func WithDefaultLocale(locale string) Option {
	return platform.WithDefaultLocale(locale)
}

// WithClock overrides the clock used for the portfolio date default.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return platform.WithRecorder(r)
}

// WithBlogDir sets the blog directory relative to the content root.
func WithBlogDir(dir string) Option {
	return platform.WithBlogDir(dir)
}

// WithPortfolioDir sets the portfolio directory relative to the content root.
func WithPortfolioDir(dir string) Option {
	return platform.WithPortfolioDir(dir)
}

// WithInclude sets the glob that selects content files.
func WithInclude(pattern string) Option {
	return platform.WithInclude(pattern)
}

// WithWatcherErrorHandler registers a callback for watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithRepositories injects custom storage for both collections.
func WithRepositories(blog, portfolio core.Repository) Option {
	return platform.WithRepositories(blog, portfolio)
}

// --- Factory ---

// New creates a Site over the content root (the directory holding blog/ and portfolio/).
func New(root string, opts ...Option) (*Site, error) {
	return platform.New(root, opts...)
}

// FindRoot looks upwards for a directory with folio.yaml or content/.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
