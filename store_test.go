package blogdesk

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock returns t and advances it by step after every call.
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC), step: time.Minute}
	s := NewStore(ScorerFunc(func(Blog) *int { return Ptr(50) }), clock.Now)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, clock
}

func TestStoreCreateDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	b, err := s.Create(BlogPatch{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", b.ID)
	}
	if b.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", b.Title, DefaultTitle)
	}
	if b.CoverImage != DefaultCoverImage {
		t.Errorf("CoverImage = %q, want default", b.CoverImage)
	}
	if b.Category != CategoryTrend {
		t.Errorf("Category = %q, want trend", b.Category)
	}
	if b.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", b.Status)
	}
	if b.AuthorID != "unknown" {
		t.Errorf("AuthorID = %q, want unknown", b.AuthorID)
	}
	if b.Tags == nil || len(b.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", b.Tags)
	}
	if b.Score == nil || *b.Score != 50 {
		t.Errorf("Score = %v, want 50", b.Score)
	}
	if !b.CreatedAt.Equal(b.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v", b.CreatedAt, b.UpdatedAt)
	}
}

func TestStoreCreateForcesDraft(t *testing.T) {
	s, _ := newTestStore(t)

	b, err := s.Create(BlogPatch{Title: Ptr("Launch"), Status: Ptr(StatusPublished)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", b.Status)
	}
}

func TestStoreCreateValidation(t *testing.T) {
	s, _ := newTestStore(t)

	tests := []struct {
		name  string
		patch BlogPatch
		field string
	}{
		{"bad category", BlogPatch{Category: Ptr(Category("news"))}, "category"},
		{"score too high", BlogPatch{Score: Ptr(101)}, "score"},
		{"negative score", BlogPatch{Score: Ptr(-1)}, "score"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.patch)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("errors.Is(err, ErrValidation) = false")
			}
		})
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after failed creates, want 0", s.Len())
	}
}

func TestStoreCreateGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Create(BlogPatch{
		Title:    Ptr("  Spring Trends  "),
		Summary:  Ptr("What to buy"),
		Content:  Ptr("<p>Body</p>"),
		Category: Ptr(CategoryReview),
		Tags:     Ptr([]string{"Spring", " spring ", "", "Fashion"}),
		Score:    Ptr(91),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Spring Trends" {
		t.Errorf("Title = %q, want trimmed", got.Title)
	}
	if got.Category != CategoryReview {
		t.Errorf("Category = %q, want review", got.Category)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "Spring" || got.Tags[1] != "Fashion" {
		t.Errorf("Tags = %v, want [Spring Fashion]", got.Tags)
	}
	if got.Score == nil || *got.Score != 91 {
		t.Errorf("Score = %v, want the supplied 91", got.Score)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
	if _, err := s.Update("missing", BlogPatch{Title: Ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update err = %v, want ErrNotFound", err)
	}
}

func TestStoreUpdateMerges(t *testing.T) {
	s, _ := newTestStore(t)

	b, _ := s.Create(BlogPatch{Title: Ptr("Original"), Summary: Ptr("Keep me"), Tags: Ptr([]string{"a"})})
	updated, err := s.Update(b.ID, BlogPatch{Title: Ptr("Renamed"), Status: Ptr(StatusPublished)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", updated.Title)
	}
	if updated.Summary != "Keep me" {
		t.Errorf("Summary = %q, want untouched", updated.Summary)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "a" {
		t.Errorf("Tags = %v, want untouched", updated.Tags)
	}
	if updated.Status != StatusPublished {
		t.Errorf("Status = %q, want published", updated.Status)
	}
	if !updated.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("CreatedAt changed from %v to %v", b.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(b.UpdatedAt) {
		t.Errorf("UpdatedAt %v not after %v", updated.UpdatedAt, b.UpdatedAt)
	}
}

func TestStoreRejectsUnpublish(t *testing.T) {
	s, _ := newTestStore(t)

	b, _ := s.Create(BlogPatch{Title: Ptr("Live")})
	if _, err := s.Update(b.ID, BlogPatch{Status: Ptr(StatusPublished)}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	_, err := s.Update(b.ID, BlogPatch{Status: Ptr(StatusDraft)})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "status" {
		t.Fatalf("err = %v, want status validation error", err)
	}
	got, _ := s.Get(b.ID)
	if got.Status != StatusPublished {
		t.Errorf("Status = %q after rejected update, want published", got.Status)
	}

	// Publishing twice is allowed.
	if _, err := s.Update(b.ID, BlogPatch{Status: Ptr(StatusPublished)}); err != nil {
		t.Errorf("republish: %v", err)
	}
}

func TestStoreUpdateIsAtomic(t *testing.T) {
	s, _ := newTestStore(t)

	b, _ := s.Create(BlogPatch{Title: Ptr("Before"), Summary: Ptr("Old")})
	_, err := s.Update(b.ID, BlogPatch{
		Title:    Ptr("After"),
		Summary:  Ptr("New"),
		Category: Ptr(Category("bogus")),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	got, _ := s.Get(b.ID)
	if got.Title != "Before" || got.Summary != "Old" {
		t.Errorf("got %q/%q, want the blog unchanged", got.Title, got.Summary)
	}
	if !got.UpdatedAt.Equal(b.UpdatedAt) {
		t.Errorf("UpdatedAt moved on a failed update")
	}
}

func TestStoreUpdateRejectsEmptyTitle(t *testing.T) {
	s, _ := newTestStore(t)

	b, _ := s.Create(BlogPatch{Title: Ptr("Named")})
	if _, err := s.Update(b.ID, BlogPatch{Title: Ptr("   ")}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestStoreUpdatedAtNeverGoesBack(t *testing.T) {
	s, clock := newTestStore(t)

	b, _ := s.Create(BlogPatch{Title: Ptr("Clock")})
	clock.Set(b.UpdatedAt.Add(-time.Hour))
	updated, err := s.Update(b.ID, BlogPatch{Summary: Ptr("later")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UpdatedAt.Before(b.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v < %v", updated.UpdatedAt, b.UpdatedAt)
	}
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(t)

	a, _ := s.Create(BlogPatch{Title: Ptr("A")})
	b, _ := s.Create(BlogPatch{Title: Ptr("B")})

	if !s.Delete(a.ID) {
		t.Error("Delete existing = false, want true")
	}
	if s.Delete(a.ID) {
		t.Error("Delete twice = true, want false")
	}
	if s.Delete("never-existed") {
		t.Error("Delete unknown = true, want false")
	}
	list := s.List()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("List = %v, want only %s", list, b.ID)
	}
}

func TestStoreListKeepsInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)

	for _, title := range []string{"first", "second", "third"} {
		if _, err := s.Create(BlogPatch{Title: Ptr(title)}); err != nil {
			t.Fatal(err)
		}
	}
	// Updating does not move a blog.
	if _, err := s.Update("id-1", BlogPatch{Summary: Ptr("edited")}); err != nil {
		t.Fatal(err)
	}
	list := s.List()
	for i, want := range []string{"first", "second", "third"} {
		if list[i].Title != want {
			t.Errorf("List[%d].Title = %q, want %q", i, list[i].Title, want)
		}
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s, _ := newTestStore(t)

	b, _ := s.Create(BlogPatch{Title: Ptr("Copy"), Tags: Ptr([]string{"one"})})
	b.Tags[0] = "mutated"
	*b.Score = 0

	list := s.List()
	list[0].Title = "mutated"
	list[0].Tags[0] = "mutated"

	got, _ := s.Get(b.ID)
	if got.Title != "Copy" || got.Tags[0] != "one" || *got.Score != 50 {
		t.Errorf("store state leaked through a returned value: %+v", got)
	}
}

func TestStoreReplace(t *testing.T) {
	s, _ := newTestStore(t)
	s.Create(BlogPatch{Title: Ptr("gone")})

	s.Replace(SeedBlogs())
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if _, err := s.Get("blog-1"); err != nil {
		t.Errorf("Get(blog-1): %v", err)
	}

	s.Replace([]Blog{{Title: "no id"}})
	list := s.List()
	if len(list) != 1 || list[0].ID == "" {
		t.Errorf("Replace did not assign an id: %+v", list)
	}
}

func TestStoreNilScorerLeavesUnscored(t *testing.T) {
	s := NewStore(nil, nil)
	b, err := s.Create(BlogPatch{Title: Ptr("unscored")})
	if err != nil {
		t.Fatal(err)
	}
	if b.Score != nil {
		t.Errorf("Score = %d, want nil", *b.Score)
	}
}

func TestStoreConcurrentCreates(t *testing.T) {
	s := NewStore(NoScorer, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Create(BlogPatch{Title: Ptr(fmt.Sprintf("post %d", i))}); err != nil {
				t.Errorf("Create: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 50 {
		t.Fatalf("Len = %d, want 50", s.Len())
	}
	seen := make(map[string]bool)
	for _, b := range s.List() {
		if seen[b.ID] {
			t.Errorf("duplicate id %s", b.ID)
		}
		seen[b.ID] = true
	}
}
