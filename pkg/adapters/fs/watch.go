package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/folio/internal/logfields"
	"github.com/aretw0/folio/pkg/core"
)

// DebounceWindow is how long the watcher coalesces events for the same ID.
const DebounceWindow = 50 * time.Millisecond

// Watch observes the repository tree and emits one event per changed document.
//
// pattern is a doublestar glob matched against slash-separated relative paths;
// an empty pattern falls back to the repository's include pattern. Cache
// entries are evicted as soon as a change is seen, before the debounced event
// is delivered. The returned channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = r.config.Include
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := r.recursiveAdd(watcher, r.Path); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &watchLoop{
		repo:      r,
		pattern:   pattern,
		watcher:   watcher,
		events:    make(chan core.Event, 64),
		debouncer: newDebouncer(DebounceWindow),
		done:      make(chan struct{}),
	}

	r.setWatcherActive(true)
	r.debug("watcher started", logfields.Path(r.Path), "pattern", pattern)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.reportError(fmt.Errorf("watcher: %w", err))
	}))

	return w.events, nil
}

// recursiveAdd registers dir and every non-hidden directory below it.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != r.Path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (r *Repository) reportError(err error) {
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
		return
	}
	if r.config.Logger != nil {
		r.config.Logger.Error("watcher error", logfields.Collection(r.config.Name), logfields.Error(err))
	}
}

type watchLoop struct {
	repo      *Repository
	pattern   string
	watcher   *fsnotify.Watcher
	events    chan core.Event
	debouncer *debouncer
	done      chan struct{}
}

func (w *watchLoop) run(ctx context.Context) error {
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()
	// Runs before the channel is closed so no timer can send on it afterwards.
	defer w.debouncer.stopAndWait()
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.repo.reportError(err)
		}
	}
}

func (w *watchLoop) handle(ctx context.Context, event fsnotify.Event) {
	// New directories need their own watch to see nested files.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.repo.recursiveAdd(w.watcher, event.Name); err != nil {
				w.repo.reportError(err)
			}
			return
		}
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	rel, err := filepath.Rel(w.repo.Path, event.Name)
	if err != nil || !filepath.IsLocal(rel) {
		return
	}
	rel = filepath.ToSlash(rel)
	if match, err := doublestar.Match(w.pattern, rel); err != nil || !match {
		return
	}
	id, ok := w.repo.idFromRel(rel)
	if !ok || w.repo.validateID(id) != nil {
		return
	}

	if w.repo.cache != nil {
		w.repo.cache.Delete(id)
	}
	w.repo.debug("change detected", logfields.ID(id), "op", event.Op.String())

	w.debouncer.add(core.Event{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		select {
		case w.events <- e:
		case <-ctx.Done():
		case <-w.done:
		}
	})
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	default:
		return ""
	}
}

// debouncer coalesces events per ID; only the last one inside the window fires.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	stopped bool
	timers  map[string]*time.Timer
	gen     map[string]uint64
	pending map[string]core.Event
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		timers:  make(map[string]*time.Timer),
		gen:     make(map[string]uint64),
		pending: make(map[string]core.Event),
	}
}

func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	// A create followed by writes is still a create.
	if prev, ok := d.pending[e.ID]; ok && prev.Type == core.EventCreate && e.Type == core.EventModify {
		e.Type = core.EventCreate
	}
	d.pending[e.ID] = e
	d.gen[e.ID]++
	gen := d.gen[e.ID]

	if t, ok := d.timers[e.ID]; ok && t.Stop() {
		// The stopped timer will never run its func.
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timers[e.ID] = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.stopped || d.gen[e.ID] != gen {
			d.mu.Unlock()
			return
		}
		ev := d.pending[e.ID]
		delete(d.pending, e.ID)
		delete(d.timers, e.ID)
		delete(d.gen, e.ID)
		d.mu.Unlock()

		fire(ev)
	})
}

// stopAndWait drops pending events and waits for in-flight callbacks.
func (d *debouncer) stopAndWait() {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
