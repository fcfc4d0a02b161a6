package core

import "context"

// Repository defines the read-only contract for content sources.
// Adhering to this interface keeps the loaders independent of the
// underlying storage (local files, embedded FS, remote buckets).
type Repository interface {
	// ListIDs returns the identifiers of every document the repository can serve.
	ListIDs(ctx context.Context) ([]string, error)

	// Get retrieves a document by its ID.
	// Errors wrap ErrNotFound, ErrMalformed or ErrInvalidID where applicable.
	Get(ctx context.Context, id string) (Document, error)
}

// Watchable defines repositories that can report changes to their documents.
type Watchable interface {
	// Watch emits an Event for each change matching pattern until ctx is done.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
