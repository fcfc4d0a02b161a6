package content

import (
	"context"
	"slices"
	"strings"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/typed"
)

// Blog frontmatter defaults.
const (
	DefaultAuthor   = "TechStudio"
	DefaultReadTime = "5 min read"
)

// BlogMetadata is the frontmatter of a blog post.
type BlogMetadata struct {
	Title    string     `json:"title"`
	Date     string     `json:"date"`
	Excerpt  string     `json:"excerpt"`
	Category string     `json:"category"`
	Tags     StringList `json:"tags"`
	Author   string     `json:"author"`
	ReadTime string     `json:"readTime"`
	Featured bool       `json:"featured"`
	Image    string     `json:"image,omitempty"`
	Locale   string     `json:"locale"`
}

// Post is a blog post keyed by its slug ("en/hello-world").
type Post = typed.Item[BlogMetadata]

// BlogLoader serves blog posts from a repository whose IDs are slugs.
type BlogLoader struct {
	collection[BlogMetadata]
}

// NewBlogLoader wraps repo. Post slugs are the repository IDs.
func NewBlogLoader(repo core.Repository, cfg Config) *BlogLoader {
	cfg = cfg.withDefaults()
	locales := slices.Clone(cfg.Locales)
	defaultLocale := cfg.DefaultLocale

	normalize := func(slug string, m *BlogMetadata) {
		if m.Category == "" {
			m.Category = DefaultCategory
		}
		if m.Author == "" {
			m.Author = DefaultAuthor
		}
		if m.ReadTime == "" {
			m.ReadTime = DefaultReadTime
		}
		m.Tags = m.Tags.orEmpty()

		if first, _, ok := strings.Cut(slug, "/"); ok && slices.Contains(locales, first) {
			m.Locale = first
		} else if m.Locale == "" {
			m.Locale = defaultLocale
		}
	}

	date := func(m *BlogMetadata) string { return m.Date }
	return &BlogLoader{newCollection[BlogMetadata](CollectionBlog, repo, normalize, date, cfg)}
}

// ListSlugs returns every post slug, sorted. Errors yield an empty list.
func (l *BlogLoader) ListSlugs(ctx context.Context) []string {
	return l.slugs(ctx)
}

// GetPost returns the post for slug, or nil if it is missing or unreadable.
func (l *BlogLoader) GetPost(ctx context.Context, slug string) *Post {
	return l.get(ctx, slug)
}

// LoadPost is GetPost with the classified error.
func (l *BlogLoader) LoadPost(ctx context.Context, slug string) (*Post, error) {
	return l.repo.Get(ctx, slug)
}

// ListAllPosts returns every readable post, newest first.
func (l *BlogLoader) ListAllPosts(ctx context.Context) []*Post {
	return l.all(ctx)
}

// ListByCategory matches the category case-insensitively.
func (l *BlogLoader) ListByCategory(ctx context.Context, category string) []*Post {
	return l.filter(ctx, func(m *BlogMetadata) bool { return foldEqual(m.Category, category) })
}

func (l *BlogLoader) ListFeatured(ctx context.Context) []*Post {
	return l.filter(ctx, func(m *BlogMetadata) bool { return m.Featured })
}

func (l *BlogLoader) ListByLocale(ctx context.Context, locale string) []*Post {
	return l.filter(ctx, func(m *BlogMetadata) bool { return m.Locale == locale })
}

func (l *BlogLoader) ListByTag(ctx context.Context, tag string) []*Post {
	return l.filter(ctx, func(m *BlogMetadata) bool { return containsFold(m.Tags, tag) })
}

// Categories returns the distinct categories in use.
func (l *BlogLoader) Categories(ctx context.Context) []string {
	all := l.all(ctx)
	cats := make([]string, 0, len(all))
	for _, p := range all {
		cats = append(cats, p.Metadata.Category)
	}
	return distinctSorted(cats)
}

// ListRelated returns up to limit other posts that share the category or a
// tag with slug, in date order. A missing post has no relations.
func (l *BlogLoader) ListRelated(ctx context.Context, slug string, limit int) []*Post {
	limit = limitOrDefault(limit)

	current := l.get(ctx, slug)
	if current == nil {
		return []*Post{}
	}

	related := make([]*Post, 0, limit)
	for _, p := range l.all(ctx) {
		if len(related) == limit {
			break
		}
		if p.Slug == current.Slug {
			continue
		}
		if foldEqual(p.Metadata.Category, current.Metadata.Category) || overlaps(p.Metadata.Tags, current.Metadata.Tags) {
			related = append(related, p)
		}
	}
	return related
}

// PostFilter combines list filters; zero fields match everything.
type PostFilter struct {
	Category string
	Locale   string
	Tag      string
	Featured bool
}

func (f PostFilter) match(m *BlogMetadata) bool {
	return (f.Category == "" || foldEqual(m.Category, f.Category)) &&
		(f.Locale == "" || m.Locale == f.Locale) &&
		(f.Tag == "" || containsFold(m.Tags, f.Tag)) &&
		(!f.Featured || m.Featured)
}

// Query returns the posts matching every set field of f, newest first.
func (l *BlogLoader) Query(ctx context.Context, f PostFilter) []*Post {
	return l.filter(ctx, f.match)
}
