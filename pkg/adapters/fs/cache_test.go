package fs

import (
	"testing"
	"time"

	"github.com/aretw0/folio/pkg/core"
)

func TestCache(t *testing.T) {
	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := core.Document{ID: "a", Content: "body"}

	t.Run("Hit On Matching Stamp", func(t *testing.T) {
		c := newCache()
		c.Set("a", doc, mtime, 10)

		got, ok := c.Get("a", mtime, 10)
		if !ok {
			t.Fatal("expected cache hit")
		}
		if got.Content != "body" {
			t.Errorf("content: got %q", got.Content)
		}
	})

	t.Run("Miss On Changed Mtime Or Size", func(t *testing.T) {
		c := newCache()
		c.Set("a", doc, mtime, 10)

		if _, ok := c.Get("a", mtime.Add(time.Second), 10); ok {
			t.Error("expected miss on newer mtime")
		}
		if _, ok := c.Get("a", mtime, 11); ok {
			t.Error("expected miss on different size")
		}
	})

	t.Run("Prune Keeps Only Listed IDs", func(t *testing.T) {
		c := newCache()
		c.Set("a", doc, mtime, 1)
		c.Set("b", doc, mtime, 1)
		c.Prune(map[string]bool{"b": true})

		if c.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", c.Len())
		}
		if _, ok := c.Get("b", mtime, 1); !ok {
			t.Error("expected b to survive prune")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c := newCache()
		c.Set("a", doc, mtime, 1)
		c.Delete("a")
		if c.Len() != 0 {
			t.Errorf("expected empty cache, got %d", c.Len())
		}
	})
}
