package folio

import (
	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/typed"
)

// Item is a document with its frontmatter decoded into T.
type Item[T any] = typed.Item[T]

// TypedRepository decodes documents of a core.Repository into T.
type TypedRepository[T any] = typed.Repository[T]

// NewTyped wraps repo for a custom frontmatter schema.
// normalize fills defaults after decoding and may be nil.
func NewTyped[T any](repo core.Repository, normalize typed.Normalizer[T]) *TypedRepository[T] {
	return typed.NewRepository[T](repo, normalize)
}

// OpenTyped serves every Markdown file below dir, decoded into T.
func OpenTyped[T any](dir string, normalize typed.Normalizer[T]) *TypedRepository[T] {
	return typed.NewRepository[T](fs.NewRepository(fs.Config{Path: dir}), normalize)
}
