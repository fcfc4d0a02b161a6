package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/core"
)

func newSite(t *testing.T) (*content.Site, string) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"blog/en/a.md":           postA,
		"portfolio/en/p1.md":     "---\ntitle: P1\n---\n",
		"portfolio/th/p1.md":     "---\ntitle: P1 TH\n---\n",
		"portfolio/en/README.md": "",
	})
	blog := fs.NewRepository(fs.Config{Path: filepath.Join(root, "blog"), Name: content.CollectionBlog, Cache: true})
	portfolio := fs.NewRepository(fs.Config{
		Path:    filepath.Join(root, "portfolio"),
		Name:    content.CollectionPortfolio,
		Layout:  fs.LayoutLocaleDirs,
		Locales: content.DefaultLocales(),
	})
	return content.NewSite(blog, portfolio, content.Config{}), root
}

func TestSite(t *testing.T) {
	ctx := context.Background()

	t.Run("Exposes Both Collections", func(t *testing.T) {
		site, _ := newSite(t)
		assert.Len(t, site.Blog.ListAllPosts(ctx), 1)
		assert.Len(t, site.Portfolio.ListAllProjects(ctx), 3)
		assert.Equal(t, []string{"en", "th"}, site.Locales())
	})

	t.Run("State", func(t *testing.T) {
		site, _ := newSite(t)
		state, ok := site.State().(content.SiteState)
		require.True(t, ok)
		assert.Equal(t, "en", state.DefaultLocale)

		blog, ok := state.Blog.(fs.RepositoryState)
		require.True(t, ok)
		assert.True(t, blog.CacheEnabled)
		assert.Equal(t, "site", site.ComponentType())
	})

	t.Run("Watch Tags Events With Collection", func(t *testing.T) {
		site, root := newSite(t)
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()

		events, err := site.Watch(wctx, "")
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(root, "portfolio", "th", "p2.md"), []byte("new"), 0644))

		select {
		case e := <-events:
			assert.Equal(t, content.CollectionPortfolio, e.Collection)
			assert.Equal(t, "th/p2", e.ID)
			assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
		case <-time.After(3 * time.Second):
			t.Fatal("no event")
		}

		cancel()
		assert.Eventually(t, func() bool {
			_, open := <-events
			return !open
		}, 3*time.Second, 10*time.Millisecond)
	})
}
