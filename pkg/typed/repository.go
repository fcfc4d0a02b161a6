package typed

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/folio/pkg/core"
)

// Item is a typed view of a core.Document: the frontmatter decoded into T.
type Item[T any] struct {
	Slug        string    `json:"slug"`
	Metadata    T         `json:"metadata"`
	Content     string    `json:"content"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	ModTime     time.Time `json:"modTime"`
}

// Normalizer fills derived and default fields after decoding.
// It receives the slug so it can derive values from the path.
type Normalizer[T any] func(slug string, data *T)

// Observer is told the duration and outcome of every Get.
type Observer func(slug string, d time.Duration, err error)

// Repository wraps a core.Repository to provide type-safe access.
type Repository[T any] struct {
	repo      core.Repository
	normalize Normalizer[T]
	observe   Observer
}

// NewRepository creates a new type-safe wrapper around an existing repository.
// normalize may be nil.
func NewRepository[T any](repo core.Repository, normalize Normalizer[T]) *Repository[T] {
	return &Repository[T]{repo: repo, normalize: normalize}
}

// Observe installs fn as the observer of every Get, List included, and returns r.
func (r *Repository[T]) Observe(fn Observer) *Repository[T] {
	r.observe = fn
	return r
}

// Slugs lists every slug known to the underlying repository.
func (r *Repository[T]) Slugs(ctx context.Context) ([]string, error) {
	return r.repo.ListIDs(ctx)
}

// Get retrieves a document and decodes its metadata into T.
func (r *Repository[T]) Get(ctx context.Context, slug string) (*Item[T], error) {
	start := time.Now()
	item, err := r.get(ctx, slug)
	if r.observe != nil {
		r.observe(slug, time.Since(start), err)
	}
	return item, err
}

func (r *Repository[T]) get(ctx context.Context, slug string) (*Item[T], error) {
	doc, err := r.repo.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	return fromCore(doc, r.normalize)
}

// List loads every document. Documents that fail to load are passed to skip
// and left out; only a listing failure aborts the call. Once ctx is done the
// items loaded so far are returned.
func (r *Repository[T]) List(ctx context.Context, skip func(slug string, err error)) ([]*Item[T], error) {
	slugs, err := r.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*Item[T], 0, len(slugs))
	for _, slug := range slugs {
		item, err := r.Get(ctx, slug)
		if err != nil {
			if skip != nil {
				skip(slug, err)
			}
			if ctx.Err() != nil {
				return items, nil
			}
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func fromCore[T any](doc core.Document, normalize Normalizer[T]) (*Item[T], error) {
	var data T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &data,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncKind(scalarHook),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(doc.Metadata); err != nil {
		return nil, fmt.Errorf("%w: %s: decode metadata: %w", core.ErrMalformed, doc.ID, err)
	}

	if normalize != nil {
		normalize(doc.ID, &data)
	}

	return &Item[T]{
		Slug:        doc.ID,
		Metadata:    data,
		Content:     doc.Content,
		Fingerprint: doc.Fingerprint,
		ModTime:     doc.ModTime,
	}, nil
}

// scalarHook complements weak decoding for hand-written frontmatter:
// booleans become "true"/"false" in string fields (not "1"/"0"), and
// yes/no/on/off are accepted for boolean fields.
func scalarHook(from, to reflect.Kind, data any) (any, error) {
	switch {
	case from == reflect.Bool && to == reflect.String:
		return strconv.FormatBool(reflect.ValueOf(data).Bool()), nil
	case from == reflect.String && to == reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String())) {
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off", "":
			return false, nil
		}
	}
	return data, nil
}
