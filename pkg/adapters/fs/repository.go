package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/folio/internal/logfields"
	"github.com/aretw0/folio/internal/metrics"
	"github.com/aretw0/folio/pkg/core"
)

// Layout describes how documents are arranged below the repository root.
type Layout int

const (
	// LayoutTree serves every Markdown file below the root; the ID is the
	// slash-separated relative path without extension ("en/a", "hello").
	LayoutTree Layout = iota
	// LayoutLocaleDirs serves Markdown files found directly inside one
	// directory per locale; the ID is "<locale>/<name>".
	LayoutLocaleDirs
)

func (l Layout) String() string {
	switch l {
	case LayoutTree:
		return "tree"
	case LayoutLocaleDirs:
		return "locale-dirs"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// DefaultInclude is the glob applied to relative paths when Config.Include is empty.
const DefaultInclude = "**/*.md"

// Repository implements core.Repository over a directory of Markdown files.
type Repository struct {
	Path    string
	config  Config
	parsers map[string]Parser
	cache   *cache

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path     string
	Name     string // collection label used in logs and metrics (e.g. "blog")
	Layout   Layout
	Locales  []string // directories scanned by LayoutLocaleDirs, in order
	Include  string   // doublestar pattern matched against relative paths
	Cache    bool     // enable the mtime-keyed read-through cache
	Logger   *slog.Logger
	Recorder metrics.Recorder

	// ErrorHandler receives non-fatal watcher errors. Optional.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
// No I/O happens until a method is called.
func NewRepository(config Config) *Repository {
	if config.Include == "" {
		config.Include = DefaultInclude
	}
	if config.Recorder == nil {
		config.Recorder = metrics.NoopRecorder{}
	}

	r := &Repository{
		Path:    config.Path,
		config:  config,
		parsers: DefaultParsers(),
	}
	if config.Cache {
		r.cache = newCache()
	}
	return r
}

// ListIDs enumerates every document below the root.
//
// LayoutTree walks the whole tree (skipping hidden directories) and fails if
// the root is missing. LayoutLocaleDirs reads each locale directory in order
// and silently skips the ones that do not exist.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		ids []string
		err error
	)
	switch r.config.Layout {
	case LayoutLocaleDirs:
		ids, err = r.listLocaleDirs(ctx)
	default:
		ids, err = r.listTree(ctx)
	}
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		keep := make(map[string]bool, len(ids))
		for _, id := range ids {
			keep[id] = true
		}
		r.cache.Prune(keep)
	}
	return ids, nil
}

func (r *Repository) listTree(ctx context.Context) ([]string, error) {
	var ids []string

	err := filepath.WalkDir(r.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != r.Path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(r.Path, p)
		if err != nil {
			return err
		}
		if id, ok := r.idFromRel(filepath.ToSlash(relPath)); ok {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", r.Path, err)
	}

	slices.Sort(ids)
	return ids, nil
}

func (r *Repository) listLocaleDirs(ctx context.Context) ([]string, error) {
	var ids []string

	for _, locale := range r.config.Locales {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := filepath.Join(r.Path, locale)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				r.debug("locale directory missing, skipping", logfields.Path(dir), logfields.Locale(locale))
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}

		// os.ReadDir returns entries sorted by filename.
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if id, ok := r.idFromRel(locale + "/" + e.Name()); ok {
				ids = append(ids, id)
			}
		}
	}

	return ids, nil
}

// idFromRel maps a slash-separated relative path to a document ID.
// It reports false for files that no parser handles or that the include pattern rejects.
func (r *Repository) idFromRel(relPath string) (string, bool) {
	ext := path.Ext(relPath)
	if _, ok := r.parsers[ext]; !ok {
		return "", false
	}
	if match, err := doublestar.Match(r.config.Include, relPath); err != nil || !match {
		return "", false
	}
	return strings.TrimSuffix(relPath, ext), true
}

// Get retrieves a document from the filesystem.
//
// Workflow:
//  1. Validate the ID (must stay below the root; locale layout requires a known locale prefix).
//  2. Locate the file among the registered extensions.
//  3. Serve from cache when the file stamp is unchanged, otherwise parse.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}
	if err := r.validateID(id); err != nil {
		return core.Document{}, err
	}

	fullPath, ext, info, err := r.locate(id)
	if err != nil {
		return core.Document{}, err
	}

	if r.cache != nil {
		if doc, hit := r.cache.Get(id, info.ModTime(), info.Size()); hit {
			r.config.Recorder.IncCacheLookup(r.config.Name, true)
			return doc, nil
		}
		r.config.Recorder.IncCacheLookup(r.config.Name, false)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Removed between stat and open.
			return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.Document{}, fmt.Errorf("failed to open %s: %w", id, err)
	}
	defer f.Close()

	doc, err := r.parsers[ext].Parse(f)
	if err != nil {
		return core.Document{}, fmt.Errorf("%w: %s: %w", core.ErrMalformed, id, err)
	}
	doc.ID = id
	doc.ModTime = info.ModTime()

	if r.cache != nil {
		r.cache.Set(id, *doc, info.ModTime(), info.Size())
	}

	return *doc, nil
}

// locate finds the file backing id, trying each registered extension in a stable order.
func (r *Repository) locate(id string) (string, string, fs.FileInfo, error) {
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	// ".md" first, then the rest alphabetically.
	slices.SortFunc(exts, func(a, b string) int {
		switch {
		case a == ".md":
			return -1
		case b == ".md":
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	for _, ext := range exts {
		fullPath := filepath.Join(r.Path, filepath.FromSlash(id+ext))
		info, err := os.Stat(fullPath)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return fullPath, ext, info, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", nil, fmt.Errorf("failed to stat %s: %w", id, err)
		}
	}

	if r.cache != nil {
		r.cache.Delete(id)
	}
	return "", "", nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
}

func (r *Repository) validateID(id string) error {
	if id == "" || strings.Contains(id, `\`) || !filepath.IsLocal(filepath.FromSlash(id)) {
		return fmt.Errorf("%w: %q", core.ErrInvalidID, id)
	}
	if r.config.Layout == LayoutLocaleDirs {
		locale, name, ok := strings.Cut(id, "/")
		if !ok || name == "" || strings.Contains(name, "/") || !slices.Contains(r.config.Locales, locale) {
			return fmt.Errorf("%w: %q is not <locale>/<name>", core.ErrInvalidID, id)
		}
	}
	return nil
}

func (r *Repository) debug(msg string, attrs ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, append([]any{logfields.Collection(r.config.Name)}, attrs...)...)
	}
}

var _ core.Repository = (*Repository)(nil)
