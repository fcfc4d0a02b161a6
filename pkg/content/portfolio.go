package content

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/typed"
)

// Portfolio frontmatter defaults.
const (
	DefaultClient         = "Confidential"
	DefaultDuration       = "N/A"
	DefaultPortfolioImage = "/images/portfolio/default.svg"
)

// PortfolioMetadata is the frontmatter of a portfolio case study.
type PortfolioMetadata struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Date         string       `json:"date"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Technologies StringList   `json:"technologies"`
	Client       string       `json:"client"`
	Duration     string       `json:"duration"`
	Featured     bool         `json:"featured"`
	Image        string       `json:"image"`
	LiveURL      string       `json:"liveUrl,omitempty"`
	GithubURL    string       `json:"githubUrl,omitempty"`
	Challenges   StringList   `json:"challenges,omitempty"`
	Solutions    StringList   `json:"solutions,omitempty"`
	Results      StringList   `json:"results,omitempty"`
	Testimonial  *Testimonial `json:"testimonial,omitempty"`
	Locale       string       `json:"locale"`
}

// Testimonial is a client quote attached to a case study.
type Testimonial struct {
	Content  string `json:"content"`
	Author   string `json:"author"`
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
}

// Project is a portfolio case study keyed by "<locale>/<name>".
type Project = typed.Item[PortfolioMetadata]

// PortfolioLoader serves case studies from a locale-partitioned repository.
type PortfolioLoader struct {
	collection[PortfolioMetadata]
}

// NewPortfolioLoader wraps repo, whose IDs must be "<locale>/<name>".
func NewPortfolioLoader(repo core.Repository, cfg Config) *PortfolioLoader {
	cfg = cfg.withDefaults()
	now := cfg.Now

	normalize := func(slug string, m *PortfolioMetadata) {
		if m.ID == "" {
			m.ID = path.Base(slug)
		}
		if locale, _, ok := strings.Cut(slug, "/"); ok {
			m.Locale = locale
		}
		if m.Date == "" {
			m.Date = now().Format(time.RFC3339)
		}
		if m.Category == "" {
			m.Category = DefaultCategory
		}
		if m.Client == "" {
			m.Client = DefaultClient
		}
		if m.Duration == "" {
			m.Duration = DefaultDuration
		}
		if m.Image == "" {
			m.Image = DefaultPortfolioImage
		}
		m.Technologies = m.Technologies.orEmpty()
	}

	date := func(m *PortfolioMetadata) string { return m.Date }
	return &PortfolioLoader{newCollection[PortfolioMetadata](CollectionPortfolio, repo, normalize, date, cfg)}
}

// ListSlugs returns "<locale>/<name>" for every project, locale by locale.
func (l *PortfolioLoader) ListSlugs(ctx context.Context) []string {
	return l.slugs(ctx)
}

// GetProject returns the project for a possibly URL-encoded slug, or nil.
func (l *PortfolioLoader) GetProject(ctx context.Context, slug string) *Project {
	p, err := l.LoadProject(ctx, slug)
	if err != nil {
		l.warn("failed to load item", slug, err)
		return nil
	}
	return p
}

// LoadProject is GetProject with the classified error.
func (l *PortfolioLoader) LoadProject(ctx context.Context, slug string) (*Project, error) {
	decoded, err := url.PathUnescape(slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", core.ErrInvalidID, slug, err)
	}
	return l.repo.Get(ctx, decoded)
}

// ListAllProjects returns every readable project, newest first.
func (l *PortfolioLoader) ListAllProjects(ctx context.Context) []*Project {
	return l.all(ctx)
}

func (l *PortfolioLoader) ListByCategory(ctx context.Context, category string) []*Project {
	return l.filter(ctx, func(m *PortfolioMetadata) bool { return foldEqual(m.Category, category) })
}

func (l *PortfolioLoader) ListFeatured(ctx context.Context) []*Project {
	return l.filter(ctx, func(m *PortfolioMetadata) bool { return m.Featured })
}

func (l *PortfolioLoader) ListByLocale(ctx context.Context, locale string) []*Project {
	return l.filter(ctx, func(m *PortfolioMetadata) bool { return m.Locale == locale })
}

func (l *PortfolioLoader) ListByTechnology(ctx context.Context, tech string) []*Project {
	return l.filter(ctx, func(m *PortfolioMetadata) bool { return containsFold(m.Technologies, tech) })
}

// Categories returns the distinct categories in use.
func (l *PortfolioLoader) Categories(ctx context.Context) []string {
	all := l.all(ctx)
	cats := make([]string, 0, len(all))
	for _, p := range all {
		cats = append(cats, p.Metadata.Category)
	}
	return distinctSorted(cats)
}

// GetProjectByID finds the project with the given metadata id in one locale.
func (l *PortfolioLoader) GetProjectByID(ctx context.Context, locale, id string) *Project {
	for _, p := range l.all(ctx) {
		if p.Metadata.Locale == locale && p.Metadata.ID == id {
			return p
		}
	}
	return nil
}

// ListRelated returns up to limit projects that share the category or a
// technology with the project whose metadata id is id.
//
// The reference project is the first match in date order regardless of
// locale, and candidates come from every locale. Every project carrying id is
// excluded. Use ListRelatedInLocale to stay within one locale.
func (l *PortfolioLoader) ListRelated(ctx context.Context, id string, limit int) []*Project {
	return related(l.all(ctx), id, limitOrDefault(limit))
}

// ListRelatedInLocale is ListRelated restricted to projects of one locale.
func (l *PortfolioLoader) ListRelatedInLocale(ctx context.Context, locale, id string, limit int) []*Project {
	all := l.all(ctx)
	all = slices.DeleteFunc(all, func(p *Project) bool { return p.Metadata.Locale != locale })
	return related(all, id, limitOrDefault(limit))
}

func related(all []*Project, id string, limit int) []*Project {
	idx := slices.IndexFunc(all, func(p *Project) bool { return p.Metadata.ID == id })
	if idx < 0 {
		return []*Project{}
	}
	current := all[idx].Metadata

	out := make([]*Project, 0, limit)
	for _, p := range all {
		if len(out) == limit {
			break
		}
		if p.Metadata.ID == id {
			continue
		}
		if foldEqual(p.Metadata.Category, current.Category) || overlaps(p.Metadata.Technologies, current.Technologies) {
			out = append(out, p)
		}
	}
	return out
}

// ProjectFilter combines list filters; zero fields match everything.
type ProjectFilter struct {
	Category   string
	Locale     string
	Technology string
	Featured   bool
}

func (f ProjectFilter) match(m *PortfolioMetadata) bool {
	return (f.Category == "" || foldEqual(m.Category, f.Category)) &&
		(f.Locale == "" || m.Locale == f.Locale) &&
		(f.Technology == "" || containsFold(m.Technologies, f.Technology)) &&
		(!f.Featured || m.Featured)
}

// Query returns the projects matching every set field of f, newest first.
func (l *PortfolioLoader) Query(ctx context.Context, f ProjectFilter) []*Project {
	return l.filter(ctx, f.match)
}
