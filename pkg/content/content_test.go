package content_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/core"
)

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
}

func testConfig(logs *bytes.Buffer) content.Config {
	return content.Config{
		Logger: slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Now:    func() time.Time { return fixedNow },
	}
}

func newBlog(t *testing.T, files map[string]string) (*content.BlogLoader, string, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files)
	logs := &bytes.Buffer{}
	repo := fs.NewRepository(fs.Config{Path: root, Name: content.CollectionBlog})
	return content.NewBlogLoader(repo, testConfig(logs)), root, logs
}

func newPortfolio(t *testing.T, files map[string]string) (*content.PortfolioLoader, string, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files)
	logs := &bytes.Buffer{}
	repo := fs.NewRepository(fs.Config{
		Path:    root,
		Name:    content.CollectionPortfolio,
		Layout:  fs.LayoutLocaleDirs,
		Locales: content.DefaultLocales(),
	})
	return content.NewPortfolioLoader(repo, testConfig(logs)), root, logs
}

// vanishingRepo deletes a file right after listing, before it is parsed.
type vanishingRepo struct {
	core.Repository
	path string
}

func (r vanishingRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.Repository.ListIDs(ctx)
	if err == nil {
		_ = os.Remove(r.path)
	}
	return ids, err
}

func slugsOf[T any](items []*T, slug func(*T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, slug(it))
	}
	return out
}

func postSlugs(posts []*content.Post) []string {
	return slugsOf(posts, func(p *content.Post) string { return p.Slug })
}

func projectSlugs(projects []*content.Project) []string {
	return slugsOf(projects, func(p *content.Project) string { return p.Slug })
}
