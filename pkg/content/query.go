package content

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"

	"github.com/aretw0/folio/pkg/typed"
)

// StringList is a list field that also accepts a single scalar:
// "tags: go" and "tags: [go]" both yield ["go"]. Frontmatter gets this from
// the typed decoder; UnmarshalJSON gives API clients the same leniency.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*l = nil
	case string:
		*l = StringList{v}
	case []any:
		out := make(StringList, 0, len(v))
		for _, e := range v {
			if e == nil {
				continue
			}
			if s, ok := e.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(e))
		}
		*l = out
	default:
		*l = StringList{fmt.Sprint(v)}
	}
	return nil
}

// orEmpty drops blank entries (from "tags: [a, ~]") and never returns nil.
func (l StringList) orEmpty() StringList {
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseDate parses the frontmatter date formats seen in practice
// (2024-01-02, RFC3339, "January 2, 2024", ...). Times without a zone are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// sortByDate orders items newest first. Unparseable dates go last; ties keep
// their incoming (slug) order.
func sortByDate[T any](items []*typed.Item[T], date func(*T) string) {
	type keyed struct {
		t  time.Time
		ok bool
	}
	keys := make(map[*typed.Item[T]]keyed, len(items))
	for _, item := range items {
		t, ok := ParseDate(date(&item.Metadata))
		keys[item] = keyed{t, ok}
	}

	slices.SortStableFunc(items, func(a, b *typed.Item[T]) int {
		ka, kb := keys[a], keys[b]
		switch {
		case ka.ok && !kb.ok:
			return -1
		case !ka.ok && kb.ok:
			return 1
		case !ka.ok && !kb.ok:
			return 0
		default:
			return kb.t.Compare(ka.t)
		}
	})
}

func fold(s string) string {
	// A Caser is stateful; one per call keeps this safe for concurrent use.
	return cases.Fold().String(s)
}

func foldEqual(a, b string) bool {
	return fold(a) == fold(b)
}

// overlaps reports whether a and b share at least one value, ignoring case.
func overlaps(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[fold(s)] = struct{}{}
	}
	for _, s := range b {
		if _, ok := seen[fold(s)]; ok {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	return slices.ContainsFunc(list, func(s string) bool { return foldEqual(s, v) })
}

// distinctSorted deduplicates values case-insensitively, keeping the first
// spelling seen, and sorts the result by folded form.
func distinctSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		k := fold(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(fold(a), fold(b))
	})
	return out
}
