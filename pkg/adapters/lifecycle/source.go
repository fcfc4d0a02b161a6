// Package lifecycle runs content change streams under aretw0/lifecycle:
// WatchAll fans in the watchers of several collections, and NewSource exposes
// a change stream as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/folio/pkg/core"
)

// WatchAll starts a watch on every repository and merges the events into one
// channel, setting Event.Collection to the repository's key. observe, if not
// nil, sees each tagged event before it is delivered.
//
// If any watch fails to start, the ones already running are stopped. The
// returned channel closes once ctx is done and every watcher has stopped.
func WatchAll(ctx context.Context, repos map[string]core.Watchable, pattern string, observe func(core.Event)) (<-chan core.Event, error) {
	if len(repos) == 0 {
		return nil, fmt.Errorf("no watchable repository")
	}

	names := make([]string, 0, len(repos))
	for name := range repos {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx, cancel := context.WithCancel(ctx)
	streams := make(map[string]<-chan core.Event, len(repos))
	for _, name := range names {
		events, err := repos[name].Watch(ctx, pattern)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to watch %s: %w", name, err)
		}
		streams[name] = events
	}

	out := make(chan core.Event)
	var wg sync.WaitGroup
	for name, events := range streams {
		wg.Add(1)
		lifecycle.Go(ctx, func(ctx context.Context) error {
			defer wg.Done()
			forward(ctx, name, events, out, observe)
			return nil
		})
	}

	go func() {
		wg.Wait()
		cancel()
		close(out)
	}()

	return out, nil
}

func forward(ctx context.Context, name string, in <-chan core.Event, out chan<- core.Event, observe func(core.Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-in:
			if !ok {
				return
			}
			e.Collection = name
			if observe != nil {
				observe(e)
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}
}

type changeSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps a change event channel, such as the one returned by
// WatchAll. Events keep their concrete core.Event type.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &changeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until the input closes or ctx is done, then closes
// the output channel.
func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
