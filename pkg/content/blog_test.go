package content_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/core"
)

const postA = `---
title: Post A
date: 2024-01-01
category: Tech
tags: ["x"]
---
Body A
`

const postB = `---
title: Post B
date: 2024-02-01
category: Tech
tags: ["y"]
featured: true
---
Body B
`

func TestBlogLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("Lists Newest First And Relates By Category", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{"en/a.md": postA, "en/b.md": postB})

		assert.Equal(t, []string{"en/a", "en/b"}, blog.ListSlugs(ctx))
		assert.Equal(t, []string{"en/b", "en/a"}, postSlugs(blog.ListAllPosts(ctx)))
		assert.Equal(t, []string{"en/b"}, postSlugs(blog.ListRelated(ctx, "en/a", 3)))
	})

	t.Run("Round Trips Complete Frontmatter", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{"th/full.md": `---
title: Full
date: 2024-05-06
excerpt: Short
category: Design
tags: [ui, ux]
author: Somchai
readTime: 3 min read
featured: true
image: /img/full.png
---
Hello`})

		post := blog.GetPost(ctx, "th/full")
		require.NotNil(t, post)
		assert.Equal(t, content.BlogMetadata{
			Title:    "Full",
			Date:     "2024-05-06",
			Excerpt:  "Short",
			Category: "Design",
			Tags:     content.StringList{"ui", "ux"},
			Author:   "Somchai",
			ReadTime: "3 min read",
			Featured: true,
			Image:    "/img/full.png",
			Locale:   "th",
		}, post.Metadata)
		assert.Equal(t, "Hello", post.Content)
	})

	t.Run("Applies Defaults", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{"en/bare.md": "No frontmatter at all"})

		post := blog.GetPost(ctx, "en/bare")
		require.NotNil(t, post)
		m := post.Metadata
		assert.Equal(t, "", m.Title)
		assert.Equal(t, "", m.Date)
		assert.Equal(t, content.DefaultCategory, m.Category)
		assert.Equal(t, content.DefaultAuthor, m.Author)
		assert.Equal(t, content.DefaultReadTime, m.ReadTime)
		assert.False(t, m.Featured)
		assert.NotNil(t, m.Tags)
		assert.Empty(t, m.Tags)
		assert.Equal(t, "No frontmatter at all", post.Content)
	})

	t.Run("Accepts Loosely Typed Scalars", func(t *testing.T) {
		blog, _, logs := newBlog(t, map[string]string{
			"en/num.md": "---\ntitle: 2024\nreadTime: 5\ndate: \"2024-01-01\"\n---\n",
			"en/yes.md": "---\ntitle: Yes\nfeatured: \"true\"\ndate: \"2024-02-01\"\n---\n",
			"en/on.md":  "---\ntitle: On\nfeatured: yes\nauthor: true\ntags: [go, 7, true]\n---\n",
		})

		assert.Equal(t, []string{"en/yes", "en/num", "en/on"}, postSlugs(blog.ListAllPosts(ctx)))
		assert.NotContains(t, logs.String(), "kind=malformed")

		num := blog.GetPost(ctx, "en/num")
		require.NotNil(t, num)
		assert.Equal(t, "2024", num.Metadata.Title)
		assert.Equal(t, "5", num.Metadata.ReadTime)
		assert.False(t, num.Metadata.Featured)

		assert.True(t, blog.GetPost(ctx, "en/yes").Metadata.Featured)

		on := blog.GetPost(ctx, "en/on")
		require.NotNil(t, on)
		assert.True(t, on.Metadata.Featured)
		assert.Equal(t, "true", on.Metadata.Author)
		assert.Equal(t, content.StringList{"go", "7", "true"}, on.Metadata.Tags)

		assert.Equal(t, []string{"en/yes", "en/on"}, postSlugs(blog.ListFeatured(ctx)))
	})

	t.Run("Nested Value In Scalar Field Is Malformed", func(t *testing.T) {
		blog, _, logs := newBlog(t, map[string]string{
			"en/a.md":   postA,
			"en/map.md": "---\ntitle: {nested: value}\n---\n",
		})

		assert.Equal(t, []string{"en/a"}, postSlugs(blog.ListAllPosts(ctx)))
		assert.Contains(t, logs.String(), "kind=malformed")
	})

	t.Run("Resolves Locale", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{
			"th/a.md":  "---\nlocale: en\n---\n",
			"hello.md": "---\nlocale: th\n---\n",
			"plain.md": "",
		})

		assert.Equal(t, "th", blog.GetPost(ctx, "th/a").Metadata.Locale)
		assert.Equal(t, "th", blog.GetPost(ctx, "hello").Metadata.Locale)
		assert.Equal(t, "en", blog.GetPost(ctx, "plain").Metadata.Locale)
		assert.Equal(t, []string{"hello", "th/a"}, postSlugs(blog.ListByLocale(ctx, "th")))
	})

	t.Run("Missing Post Is Nil", func(t *testing.T) {
		blog, _, logs := newBlog(t, map[string]string{"en/a.md": postA})

		assert.Nil(t, blog.GetPost(ctx, "en/nope"))
		assert.Contains(t, logs.String(), "kind=not_found")

		_, err := blog.LoadPost(ctx, "en/nope")
		assert.True(t, errors.Is(err, core.ErrNotFound))
	})

	t.Run("Malformed Post Is Nil And Skipped", func(t *testing.T) {
		blog, _, logs := newBlog(t, map[string]string{
			"en/a.md":   postA,
			"en/bad.md": "---\ntitle: [oops\n---\n",
		})

		assert.Nil(t, blog.GetPost(ctx, "en/bad"))
		assert.Contains(t, logs.String(), "kind=malformed")
		assert.Equal(t, []string{"en/a"}, postSlugs(blog.ListAllPosts(ctx)))

		_, err := blog.LoadPost(ctx, "en/bad")
		assert.True(t, errors.Is(err, core.ErrMalformed))
	})

	t.Run("File Deleted Before Parse", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, map[string]string{"en/a.md": postA, "en/b.md": postB})
		repo := vanishingRepo{
			Repository: fs.NewRepository(fs.Config{Path: root}),
			path:       filepath.Join(root, "en", "a.md"),
		}
		blog := content.NewBlogLoader(repo, content.Config{})

		assert.Equal(t, []string{"en/b"}, postSlugs(blog.ListAllPosts(ctx)))
		assert.Nil(t, blog.GetPost(ctx, "en/a"))
	})

	t.Run("Missing Directory Yields Empty Lists", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "missing")})
		blog := content.NewBlogLoader(repo, content.Config{})

		assert.NotNil(t, blog.ListSlugs(ctx))
		assert.Empty(t, blog.ListSlugs(ctx))
		assert.Empty(t, blog.ListAllPosts(ctx))
		assert.Empty(t, blog.ListRelated(ctx, "en/a", 3))
	})

	t.Run("Filters", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{
			"en/a.md": postA,
			"en/b.md": postB,
			"en/c.md": "---\ndate: 2023-01-01\ncategory: Business\ntags: [X]\n---\n",
		})

		assert.Equal(t, []string{"en/b", "en/a"}, postSlugs(blog.ListByCategory(ctx, "tech")))
		assert.Equal(t, []string{"en/b"}, postSlugs(blog.ListFeatured(ctx)))
		assert.Equal(t, []string{"en/a", "en/c"}, postSlugs(blog.ListByTag(ctx, "x")))
		assert.Equal(t, []string{"Business", "Tech"}, blog.Categories(ctx))

		assert.Equal(t, []string{"en/b", "en/a", "en/c"}, postSlugs(blog.Query(ctx, content.PostFilter{})))
		assert.Equal(t, []string{"en/a"}, postSlugs(blog.Query(ctx, content.PostFilter{Category: "TECH", Tag: "x"})))
		assert.Empty(t, blog.Query(ctx, content.PostFilter{Tag: "x", Featured: true}))
		assert.Equal(t, []string{"en/b"}, postSlugs(blog.Query(ctx, content.PostFilter{Locale: "en", Featured: true})))
	})

	t.Run("Related Respects Limit And Excludes Self", func(t *testing.T) {
		files := map[string]string{}
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			files["en/"+name+".md"] = "---\ncategory: Tech\n---\n"
		}
		files["en/other.md"] = "---\ncategory: Food\ntags: [x]\n---\n"
		blog, _, _ := newBlog(t, files)

		related := blog.ListRelated(ctx, "en/a", 2)
		assert.Len(t, related, 2)
		assert.NotContains(t, postSlugs(related), "en/a")

		assert.Len(t, blog.ListRelated(ctx, "en/a", 0), content.DefaultRelatedLimit)
		assert.Empty(t, blog.ListRelated(ctx, "en/other", 3))
		assert.Empty(t, blog.ListRelated(ctx, "en/none", 3))
	})

	t.Run("Related Matches Tags Case Insensitively", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{
			"en/a.md": "---\ncategory: One\ntags: [Go]\n---\n",
			"en/b.md": "---\ncategory: Two\ntags: [go]\n---\n",
			"en/c.md": "---\ncategory: Three\ntags: [rust]\n---\n",
		})
		assert.Equal(t, []string{"en/b"}, postSlugs(blog.ListRelated(ctx, "en/a", 3)))
	})

	t.Run("Unparseable Dates Sort Last", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{
			"a.md": "---\ndate: not a date\n---\n",
			"b.md": "---\ndate: 2020-01-01\n---\n",
			"c.md": "",
			"d.md": "---\ndate: 2024-06-01T10:00:00Z\n---\n",
		})
		assert.Equal(t, []string{"d", "b", "a", "c"}, postSlugs(blog.ListAllPosts(ctx)))
	})

	t.Run("Rejects Escaping Slugs", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{"en/a.md": postA})

		assert.Nil(t, blog.GetPost(ctx, "../secret"))
		_, err := blog.LoadPost(ctx, "../secret")
		assert.True(t, errors.Is(err, core.ErrInvalidID))
	})

	t.Run("Canceled Context Returns Empty", func(t *testing.T) {
		blog, _, _ := newBlog(t, map[string]string{"en/a.md": postA})
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.Empty(t, blog.ListAllPosts(cctx))
	})
}
