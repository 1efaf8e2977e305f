package blogdesk

import (
	"net/url"
	"sort"
	"strings"
)

// FilterAll is the sentinel that disables the category or status filter.
const FilterAll = "all"

// Query selects a subset of blogs. Every active filter must match.
type Query struct {
	Search   string   // case-insensitive substring of title, summary or any tag
	Category Category // "" or "all" matches every category
	Status   Status   // "" or "all" matches every status
}

// ParseQuery reads q, category and status from URL values.
func ParseQuery(v url.Values) (Query, error) {
	q := Query{Search: strings.TrimSpace(v.Get("q"))}
	if c := strings.TrimSpace(v.Get("category")); c != "" && c != FilterAll {
		cat, ok := ParseCategory(c)
		if !ok {
			return Query{}, invalid("category", "must be one of all, trend, review, tip")
		}
		q.Category = cat
	}
	if s := strings.TrimSpace(v.Get("status")); s != "" && s != FilterAll {
		st := Status(strings.ToLower(s))
		if !st.Valid() {
			return Query{}, invalid("status", "must be one of all, draft, published")
		}
		q.Status = st
	}
	return q, nil
}

// Match reports whether b satisfies every active filter.
func (q Query) Match(b Blog) bool {
	return q.matchSearch(b) && q.matchCategory(b) && q.matchStatus(b)
}

func (q Query) matchSearch(b Blog) bool {
	needle := strings.ToLower(q.Search)
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Summary), needle) {
		return true
	}
	for _, t := range b.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func (q Query) matchCategory(b Blog) bool {
	return q.Category == "" || q.Category == FilterAll || b.Category == q.Category
}

func (q Query) matchStatus(b Blog) bool {
	return q.Status == "" || q.Status == FilterAll || b.Status == q.Status
}

// Filter returns the blogs matching q, preserving their order. The input is
// not modified.
func Filter(blogs []Blog, q Query) []Blog {
	out := make([]Blog, 0, len(blogs))
	for _, b := range blogs {
		if q.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Recent returns up to n blogs ordered by UpdatedAt, newest first. Ties keep
// insertion order. n <= 0 returns all of them.
func Recent(blogs []Blog, n int) []Blog {
	out := append([]Blog(nil), blogs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
