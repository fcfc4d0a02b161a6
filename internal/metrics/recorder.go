package metrics

import "time"

// Recorder defines observability hooks for content loading. collection is the
// content type label ("blog", "portfolio"); kind is a core.Kind value.
type Recorder interface {
	ObserveLoadDuration(collection string, d time.Duration)
	IncLoadResult(collection, kind string)
	IncCacheLookup(collection string, hit bool)
	IncWatchEvent(collection, eventType string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(string, time.Duration) {}
func (NoopRecorder) IncLoadResult(string, string)              {}
func (NoopRecorder) IncCacheLookup(string, bool)               {}
func (NoopRecorder) IncWatchEvent(string, string)              {}

var _ Recorder = NoopRecorder{}
