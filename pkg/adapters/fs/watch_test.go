package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/core"
)

func waitEvent(t *testing.T, events <-chan core.Event, id string) core.Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case e, ok := <-events:
			require.True(t, ok, "events channel closed early")
			if e.ID == id {
				return e
			}
		case <-timeout:
			t.Fatalf("timed out waiting for event on %s", id)
		}
	}
}

func TestWatch(t *testing.T) {
	t.Run("Emits Create And Evicts Cache", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "en/a.md", "---\ntitle: A\n---\n")

		repo := NewRepository(Config{Path: root, Cache: true})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_, err := repo.Get(ctx, "en/a")
		require.NoError(t, err)

		events, err := repo.Watch(ctx, "")
		require.NoError(t, err)

		writeFile(t, root, "en/b.md", "new")
		e := waitEvent(t, events, "en/b")
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)

		require.NoError(t, os.Remove(filepath.Join(root, "en", "a.md")))
		e = waitEvent(t, events, "en/a")
		assert.Equal(t, core.EventDelete, e.Type)
		assert.Equal(t, 0, repo.cache.Len())
	})

	t.Run("Watches Directories Created Later", func(t *testing.T) {
		root := t.TempDir()
		repo := NewRepository(Config{Path: root})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := repo.Watch(ctx, "")
		require.NoError(t, err)

		require.NoError(t, os.MkdirAll(filepath.Join(root, "th"), 0755))
		// Give the loop a moment to register the new directory.
		time.Sleep(100 * time.Millisecond)
		writeFile(t, root, "th/x.md", "x")

		waitEvent(t, events, "th/x")
	})

	t.Run("Ignores Non Matching Files", func(t *testing.T) {
		root := t.TempDir()
		repo := NewRepository(Config{Path: root})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := repo.Watch(ctx, "")
		require.NoError(t, err)

		writeFile(t, root, "notes.txt", "ignored")
		writeFile(t, root, "real.md", "seen")

		e := waitEvent(t, events, "real")
		assert.Equal(t, "real", e.ID)
	})

	t.Run("Skips Paths Outside Locale Dirs", func(t *testing.T) {
		root := t.TempDir()
		for _, dir := range []string{"en/sub", "fr"} {
			require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0755))
		}
		repo := NewRepository(Config{Path: root, Layout: LayoutLocaleDirs, Locales: []string{"en", "th"}})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := repo.Watch(ctx, "")
		require.NoError(t, err)

		writeFile(t, root, "fr/x.md", "x")
		writeFile(t, root, "en/sub/y.md", "y")
		writeFile(t, root, "en/ok.md", "ok")

		var seen []string
		timeout := time.After(3 * time.Second)
		settle := time.After(time.Hour)
	loop:
		for {
			select {
			case e := <-events:
				seen = append(seen, e.ID)
				if e.ID == "en/ok" {
					settle = time.After(4 * DebounceWindow)
				}
			case <-settle:
				break loop
			case <-timeout:
				break loop
			}
		}
		assert.Contains(t, seen, "en/ok")
		assert.NotContains(t, seen, "fr/x")
		assert.NotContains(t, seen, "en/sub/y")
	})

	t.Run("Closes Channel On Cancel", func(t *testing.T) {
		repo := NewRepository(Config{Path: t.TempDir()})
		ctx, cancel := context.WithCancel(context.Background())

		events, err := repo.Watch(ctx, "")
		require.NoError(t, err)
		assert.Eventually(t, func() bool {
			return repo.State().(RepositoryState).WatcherActive
		}, time.Second, 10*time.Millisecond)

		cancel()
		select {
		case _, ok := <-events:
			assert.False(t, ok)
		case <-time.After(3 * time.Second):
			t.Fatal("channel not closed")
		}
		assert.Eventually(t, func() bool {
			return !repo.State().(RepositoryState).WatcherActive
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Rejects Invalid Pattern", func(t *testing.T) {
		repo := NewRepository(Config{Path: t.TempDir()})
		_, err := repo.Watch(context.Background(), "[")
		assert.Error(t, err)
	})
}

func TestDebouncer(t *testing.T) {
	t.Run("Coalesces Events Per ID", func(t *testing.T) {
		d := newDebouncer(20 * time.Millisecond)

		var mu sync.Mutex
		var fired []core.Event
		fire := func(e core.Event) {
			mu.Lock()
			defer mu.Unlock()
			fired = append(fired, e)
		}

		d.add(core.Event{Type: core.EventCreate, ID: "a"}, fire)
		d.add(core.Event{Type: core.EventModify, ID: "a"}, fire)
		d.add(core.Event{Type: core.EventModify, ID: "b"}, fire)

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(fired) == 2
		}, time.Second, 5*time.Millisecond)

		d.stopAndWait()

		mu.Lock()
		defer mu.Unlock()
		byID := map[string]core.EventType{}
		for _, e := range fired {
			byID[e.ID] = e.Type
		}
		assert.Equal(t, core.EventCreate, byID["a"])
		assert.Equal(t, core.EventModify, byID["b"])
	})

	t.Run("Drops Pending On Stop", func(t *testing.T) {
		d := newDebouncer(time.Hour)
		called := false
		d.add(core.Event{ID: "a"}, func(core.Event) { called = true })
		d.stopAndWait()
		assert.False(t, called)
	})
}
