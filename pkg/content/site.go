package content

import (
	"context"
	"log/slog"
	"slices"

	"github.com/aretw0/introspection"

	"github.com/aretw0/folio/internal/logfields"
	"github.com/aretw0/folio/internal/metrics"
	changes "github.com/aretw0/folio/pkg/adapters/lifecycle"
	"github.com/aretw0/folio/pkg/core"
)

// Site groups the blog and portfolio collections of one content root.
type Site struct {
	Blog      *BlogLoader
	Portfolio *PortfolioLoader

	blogRepo      core.Repository
	portfolioRepo core.Repository
	cfg           Config
}

// NewSite builds both loaders over their repositories.
func NewSite(blog, portfolio core.Repository, cfg Config) *Site {
	cfg = cfg.withDefaults()
	return &Site{
		Blog:          NewBlogLoader(blog, cfg),
		Portfolio:     NewPortfolioLoader(portfolio, cfg),
		blogRepo:      blog,
		portfolioRepo: portfolio,
		cfg:           cfg,
	}
}

// Locales returns the configured locales in listing order.
func (s *Site) Locales() []string {
	return slices.Clone(s.cfg.Locales)
}

// Watch merges the change events of both collections into one channel and
// tags each event with its collection. Repositories that cannot be watched
// are skipped. The channel closes once ctx is done.
func (s *Site) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	repos := make(map[string]core.Watchable, 2)
	if w, ok := s.blogRepo.(core.Watchable); ok {
		repos[CollectionBlog] = w
	}
	if w, ok := s.portfolioRepo.(core.Watchable); ok {
		repos[CollectionPortfolio] = w
	}

	return changes.WatchAll(ctx, repos, pattern, func(e core.Event) {
		s.cfg.Recorder.IncWatchEvent(e.Collection, string(e.Type))
		s.cfg.Logger.Debug("content changed", logfields.Collection(e.Collection), logfields.ID(e.ID), logfields.Event(string(e.Type)))
	})
}

// SiteState exposes the collections' state for observability.
type SiteState struct {
	Locales       []string `json:"locales"`
	DefaultLocale string   `json:"default_locale"`
	Blog          any      `json:"blog,omitempty"`
	Portfolio     any      `json:"portfolio,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Site) State() any {
	state := SiteState{
		Locales:       s.Locales(),
		DefaultLocale: s.cfg.DefaultLocale,
	}
	if i, ok := s.blogRepo.(introspection.Introspectable); ok {
		state.Blog = i.State()
	}
	if i, ok := s.portfolioRepo.(introspection.Introspectable); ok {
		state.Portfolio = i.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Site) ComponentType() string {
	return "site"
}

// Logger returns the logger shared by the loaders.
func (s *Site) Logger() *slog.Logger {
	return s.cfg.Logger
}

// Recorder returns the metrics recorder shared by the loaders.
func (s *Site) Recorder() metrics.Recorder {
	return s.cfg.Recorder
}

var _ introspection.Introspectable = (*Site)(nil)
var _ introspection.Component = (*Site)(nil)
