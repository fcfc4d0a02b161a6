package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/core"
)

func TestSource(t *testing.T) {
	t.Run("Forwards Events And Closes With Input", func(t *testing.T) {
		in := make(chan core.Event, 2)
		in <- core.Event{Type: core.EventCreate, ID: "en/a", Collection: "blog"}
		in <- core.Event{Type: core.EventDelete, ID: "th/p", Collection: "portfolio"}
		close(in)

		src := NewSource(in)
		require.NoError(t, src.Start(context.Background()))

		var got []core.Event
		for e := range src.Events() {
			ce, ok := e.(core.Event)
			require.True(t, ok)
			got = append(got, ce)
		}
		require.Len(t, got, 2)
		assert.Equal(t, "en/a", got[0].ID)
		assert.Equal(t, core.EventDelete, got[1].Type)
	})

	t.Run("Closes On Cancel", func(t *testing.T) {
		in := make(chan core.Event)
		ctx, cancel := context.WithCancel(context.Background())

		src := NewSource(in)
		require.NoError(t, src.Start(ctx))
		cancel()

		select {
		case _, ok := <-src.Events():
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("source did not close after cancel")
		}
	})
}

// fakeWatchable returns a channel the test feeds, closing it when ctx is done.
type fakeWatchable struct {
	events chan core.Event
	err    error
	ctx    context.Context
}

func newFake() *fakeWatchable {
	return &fakeWatchable{events: make(chan core.Event, 4)}
}

func (f *fakeWatchable) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.ctx = ctx
	out := make(chan core.Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-f.events:
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func TestWatchAll(t *testing.T) {
	t.Run("Tags Events With Collection", func(t *testing.T) {
		blog, portfolio := newFake(), newFake()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var mu sync.Mutex
		var observed []string
		events, err := WatchAll(ctx, map[string]core.Watchable{"blog": blog, "portfolio": portfolio}, "", func(e core.Event) {
			mu.Lock()
			defer mu.Unlock()
			observed = append(observed, e.Collection+":"+e.ID)
		})
		require.NoError(t, err)

		portfolio.events <- core.Event{Type: core.EventModify, ID: "th/p"}
		select {
		case e := <-events:
			assert.Equal(t, "portfolio", e.Collection)
			assert.Equal(t, "th/p", e.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("no event")
		}
		mu.Lock()
		assert.Equal(t, []string{"portfolio:th/p"}, observed)
		mu.Unlock()

		cancel()
		assert.Eventually(t, func() bool {
			_, open := <-events
			return !open
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("Stops Started Watches When One Fails", func(t *testing.T) {
		blog := newFake()
		broken := &fakeWatchable{err: errors.New("boom")}

		_, err := WatchAll(context.Background(), map[string]core.Watchable{"blog": blog, "portfolio": broken}, "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "portfolio")
		require.NotNil(t, blog.ctx)
		assert.Error(t, blog.ctx.Err())
	})

	t.Run("Requires A Repository", func(t *testing.T) {
		_, err := WatchAll(context.Background(), nil, "", nil)
		assert.Error(t, err)
	})
}
