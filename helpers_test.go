package blogdesk

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Hello World", "hello-world"},
		{"  My Photo (1) ", "my-photo-1"},
		{"already-slugged", "already-slugged"},
		{"Ünïcode!!", "n-code"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", []string{"preview", "blog-1"}, "https://example.com/preview/blog-1/"},
		{"https://example.com/", []string{"preview", "blog-1"}, "https://example.com/preview/blog-1/"},
		{"https://example.com/desk", []string{"preview", "x"}, "https://example.com/desk/preview/x/"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "", "Web", "  ", "WEB", "api"})
	want := []string{"Go", "Web", "api"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags = %v, want %v", got, want)
	}
	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Errorf("NormalizeTags(nil) = %#v, want empty slice", got)
	}
}

func TestJoinParseTags(t *testing.T) {
	tests := []struct {
		tags   []string
		joined string
	}{
		{[]string{"go", "web"}, ",go,web,"},
		{[]string{"single"}, ",single,"},
		{[]string{}, ""},
	}
	for _, tt := range tests {
		if got := JoinTags(tt.tags); got != tt.joined {
			t.Errorf("JoinTags(%v) = %q, want %q", tt.tags, got, tt.joined)
		}
		if got := ParseTags(tt.joined); !reflect.DeepEqual(got, tt.tags) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.joined, got, tt.tags)
		}
	}
}

func TestRelatedBlogs(t *testing.T) {
	current := Blog{ID: "1", Tags: []string{"Fashion", "spring"}}
	blogs := []Blog{
		current,
		{ID: "2", Tags: []string{"fashion"}},
		{ID: "3", Tags: []string{"audio"}},
		{ID: "4", Tags: []string{"summer", "SPRING"}},
		{ID: "5"},
	}
	got := RelatedBlogs(current, blogs)
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "4" {
		t.Errorf("RelatedBlogs = %v, want blogs 2 and 4", got)
	}
	if got := RelatedBlogs(Blog{ID: "x"}, blogs); len(got) != 0 {
		t.Errorf("RelatedBlogs without tags = %v, want none", got)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"trend", CategoryTrend, true},
		{"Trends", CategoryTrend, true},
		{" reviews ", CategoryReview, true},
		{"tip", CategoryTip, true},
		{"tips", CategoryTip, true},
		{"news", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
