package blogdesk

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

func queryFixture() []Blog {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []Blog{
		{ID: "a", Title: "Spring Fashion Trends", Summary: "Colors of the season", Category: CategoryTrend, Status: StatusPublished, Tags: []string{"fashion"}, UpdatedAt: base},
		{ID: "b", Title: "Headphones Review", Summary: "Noise cancelling tested", Category: CategoryReview, Status: StatusPublished, Tags: []string{"Audio", "tech"}, UpdatedAt: base.Add(48 * time.Hour)},
		{ID: "c", Title: "Save on Groceries", Summary: "Budget shopping tips", Category: CategoryTip, Status: StatusDraft, Tags: []string{"budget"}, UpdatedAt: base.Add(24 * time.Hour)},
		{ID: "d", Title: "Smart Home Gadgets", Summary: "Devices worth buying", Category: CategoryReview, Status: StatusDraft, Tags: nil, UpdatedAt: base.Add(24 * time.Hour)},
	}
}

func ids(blogs []Blog) []string {
	out := make([]string, len(blogs))
	for i, b := range blogs {
		out[i] = b.ID
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	blogs := queryFixture()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"empty query matches all", Query{}, []string{"a", "b", "c", "d"}},
		{"all sentinels", Query{Category: FilterAll, Status: FilterAll}, []string{"a", "b", "c", "d"}},
		{"title case-insensitive", Query{Search: "SPRING"}, []string{"a"}},
		{"summary", Query{Search: "budget shopping"}, []string{"c"}},
		{"tag substring", Query{Search: "aud"}, []string{"b"}},
		{"category", Query{Category: CategoryReview}, []string{"b", "d"}},
		{"status", Query{Status: StatusDraft}, []string{"c", "d"}},
		{"combined", Query{Search: "e", Category: CategoryReview, Status: StatusPublished}, []string{"b"}},
		{"no match", Query{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(blogs, tt.query))
			if !equalIDs(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	blogs := queryFixture()
	Filter(blogs, Query{Status: StatusDraft})
	if !equalIDs(ids(blogs), []string{"a", "b", "c", "d"}) {
		t.Errorf("input reordered: %v", ids(blogs))
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		want    Query
		wantErr string
	}{
		{"empty", url.Values{}, Query{}, ""},
		{"trimmed search", url.Values{"q": {"  deals "}}, Query{Search: "deals"}, ""},
		{"plural category", url.Values{"category": {"reviews"}}, Query{Category: CategoryReview}, ""},
		{"all", url.Values{"category": {"all"}, "status": {"all"}}, Query{}, ""},
		{"status case", url.Values{"status": {"Published"}}, Query{Status: StatusPublished}, ""},
		{"bad category", url.Values{"category": {"news"}}, Query{}, "category"},
		{"bad status", url.Values{"status": {"archived"}}, Query{}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.values)
			if tt.wantErr != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) || ve.Field != tt.wantErr {
					t.Fatalf("err = %v, want validation error on %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseQuery = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecent(t *testing.T) {
	blogs := queryFixture()

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"newest first with stable ties", 0, []string{"b", "c", "d", "a"}},
		{"limited", 2, []string{"b", "c"}},
		{"limit above length", 10, []string{"b", "c", "d", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Recent(blogs, tt.n))
			if !equalIDs(got, tt.want) {
				t.Errorf("Recent(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
	if !equalIDs(ids(blogs), []string{"a", "b", "c", "d"}) {
		t.Errorf("Recent reordered its input: %v", ids(blogs))
	}
}
