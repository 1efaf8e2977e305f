package blogdesk

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestArchive(t *testing.T) (*Archive, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "archive.db")
	a, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, path
}

func TestArchiveEmpty(t *testing.T) {
	a, _ := openTestArchive(t)

	blogs, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(blogs) != 0 {
		t.Errorf("Load = %d blogs, want 0", len(blogs))
	}
}

func TestArchiveSaveLoad(t *testing.T) {
	a, _ := openTestArchive(t)
	ctx := context.Background()

	local := time.FixedZone("EST", -5*3600)
	want := []Blog{
		{
			ID: "z", Title: "Last inserted first", Summary: "s", Content: "<p>c</p>",
			CoverImage: DefaultCoverImage, Category: CategoryTip, Status: StatusDraft,
			CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 123456789, local),
			UpdatedAt: time.Date(2025, 1, 3, 3, 4, 5, 0, local),
			AuthorID:  "user-1", Tags: []string{"budget", "home"}, Score: Ptr(64),
		},
		{
			ID: "a", Title: "Unscored", Category: CategoryTrend, Status: StatusPublished,
			CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			AuthorID:  "user-2", Tags: []string{},
		},
	}
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := a.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load = %d blogs, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Title != w.Title || g.Summary != w.Summary || g.Content != w.Content ||
			g.CoverImage != w.CoverImage || g.Category != w.Category || g.Status != w.Status || g.AuthorID != w.AuthorID {
			t.Errorf("blog %d = %+v, want %+v", i, g, w)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) || !g.UpdatedAt.Equal(w.UpdatedAt) {
			t.Errorf("blog %d timestamps = %v/%v, want %v/%v", i, g.CreatedAt, g.UpdatedAt, w.CreatedAt, w.UpdatedAt)
		}
		if !reflect.DeepEqual(g.Tags, w.Tags) {
			t.Errorf("blog %d tags = %v, want %v", i, g.Tags, w.Tags)
		}
		if (g.Score == nil) != (w.Score == nil) || (g.Score != nil && *g.Score != *w.Score) {
			t.Errorf("blog %d score = %v, want %v", i, g.Score, w.Score)
		}
	}
}

func TestArchiveSaveReplaces(t *testing.T) {
	a, _ := openTestArchive(t)
	ctx := context.Background()

	if err := a.Save(ctx, SeedBlogs()); err != nil {
		t.Fatalf("Save seed: %v", err)
	}
	if err := a.Save(ctx, []Blog{{ID: "only", Title: "Only", Category: CategoryTrend, Status: StatusDraft}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := a.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "only" {
		t.Errorf("Load = %v, want only the last snapshot", ids(got))
	}
}

func TestArchiveReopen(t *testing.T) {
	a, path := openTestArchive(t)
	if err := a.Save(context.Background(), SeedBlogs()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	a.Close()

	b, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	got, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !equalIDs(ids(got), []string{"blog-1", "blog-2", "blog-3"}) {
		t.Errorf("Load = %v, want seed order", ids(got))
	}
}
