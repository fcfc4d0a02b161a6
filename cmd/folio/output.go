package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/folio"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writePosts prints one line per post: slug, date and title.
func writePosts(w io.Writer, posts []*folio.Post) {
	for _, p := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Slug, p.Metadata.Date, p.Metadata.Title)
	}
}

func writeProjects(w io.Writer, projects []*folio.Project) {
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, p.Metadata.ID, p.Metadata.Date, p.Metadata.Title)
	}
}

func writePostDetail(w io.Writer, p *folio.Post) {
	m := p.Metadata
	fmt.Fprintf(w, "# %s\n", m.Title)
	fmt.Fprintf(w, "slug: %s\nlocale: %s\ndate: %s\ncategory: %s\nauthor: %s\nread time: %s\n",
		p.Slug, m.Locale, m.Date, m.Category, m.Author, m.ReadTime)
	if len(m.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(m.Tags, ", "))
	}
	fmt.Fprintf(w, "\n%s", p.Content)
}

func writeProjectDetail(w io.Writer, p *folio.Project) {
	m := p.Metadata
	fmt.Fprintf(w, "# %s\n", m.Title)
	fmt.Fprintf(w, "slug: %s\nid: %s\nlocale: %s\ndate: %s\ncategory: %s\nclient: %s\nduration: %s\n",
		p.Slug, m.ID, m.Locale, m.Date, m.Category, m.Client, m.Duration)
	if len(m.Technologies) > 0 {
		fmt.Fprintf(w, "technologies: %s\n", strings.Join(m.Technologies, ", "))
	}
	fmt.Fprintf(w, "\n%s", p.Content)
}
