package fs

import (
	"slices"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Name          string   `json:"name"`
	Path          string   `json:"path"`
	Layout        string   `json:"layout"`
	Locales       []string `json:"locales,omitempty"`
	Include       string   `json:"include"`
	CacheEnabled  bool     `json:"cache_enabled"`
	CacheSize     int      `json:"cache_size"`
	Parsers       []string `json:"parsers"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parsers := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		parsers = append(parsers, ext)
	}
	slices.Sort(parsers)

	size := 0
	if r.cache != nil {
		size = r.cache.Len()
	}

	return RepositoryState{
		Name:          r.config.Name,
		Path:          r.Path,
		Layout:        r.config.Layout.String(),
		Locales:       slices.Clone(r.config.Locales),
		Include:       r.config.Include,
		CacheEnabled:  r.cache != nil,
		CacheSize:     size,
		Parsers:       parsers,
		WatcherActive: r.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
