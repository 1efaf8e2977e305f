package blogdesk

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the single source of truth for blogs. It keeps them in memory in
// insertion order and hands out copies, never references into its slice.
// Mutations are serialized by the lock, so concurrent writers get
// last-write-wins semantics.
type Store struct {
	mu     sync.RWMutex
	blogs  []Blog
	scorer Scorer
	now    func() time.Time
	newID  func() string
}

// NewStore creates an empty Store. A nil scorer leaves new blogs unscored;
// a nil clock uses time.Now.
func NewStore(scorer Scorer, now func() time.Time) *Store {
	if scorer == nil {
		scorer = NoScorer
	}
	if now == nil {
		now = time.Now
	}
	return &Store{
		scorer: scorer,
		now:    now,
		newID:  uuid.NewString,
	}
}

// List returns every blog in insertion order.
func (s *Store) List() []Blog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Blog, len(s.blogs))
	for i, b := range s.blogs {
		out[i] = b.clone()
	}
	return out
}

// Len returns the number of stored blogs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blogs)
}

// Get returns the blog with the given id, or ErrNotFound.
func (s *Store) Get(id string) (Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Blog{}, ErrNotFound
	}
	return s.blogs[i].clone(), nil
}

// Create fills defaults for omitted fields, forces the draft status, assigns
// an id and timestamps, and appends the blog.
func (s *Store) Create(p BlogPatch) (Blog, error) {
	b := Blog{
		Title:      DefaultTitle,
		CoverImage: DefaultCoverImage,
		Category:   CategoryTrend,
		AuthorID:   "unknown",
		Tags:       []string{},
	}
	p.Status = nil
	if err := merge(&b, p); err != nil {
		return Blog{}, err
	}
	if strings.TrimSpace(b.Title) == "" {
		b.Title = DefaultTitle
	}
	if b.CoverImage == "" {
		b.CoverImage = DefaultCoverImage
	}
	if b.AuthorID == "" {
		b.AuthorID = "unknown"
	}
	b.Status = StatusDraft
	if p.Score == nil {
		b.Score = s.scorer.Score(b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	b.ID = s.newID()
	for s.indexOf(b.ID) >= 0 {
		b.ID = s.newID()
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	s.blogs = append(s.blogs, b)
	return b.clone(), nil
}

// Update merges the supplied fields into the blog with the given id and
// refreshes UpdatedAt. Nothing is written when validation fails.
func (s *Store) Update(id string, p BlogPatch) (Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Blog{}, ErrNotFound
	}
	b := s.blogs[i].clone()
	if err := merge(&b, p); err != nil {
		return Blog{}, err
	}
	if strings.TrimSpace(b.Title) == "" {
		return Blog{}, invalid("title", "must not be empty")
	}
	now := s.now()
	if now.Before(b.UpdatedAt) {
		now = b.UpdatedAt
	}
	b.UpdatedAt = now
	s.blogs[i] = b
	return b.clone(), nil
}

// Delete removes the blog with the given id. Deleting an unknown id is a
// no-op; the return value reports whether anything was removed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.blogs = append(s.blogs[:i], s.blogs[i+1:]...)
	return true
}

// Replace swaps the whole collection, e.g. when loading seed data or an
// archive. Blogs without an id get one.
func (s *Store) Replace(blogs []Blog) {
	next := make([]Blog, 0, len(blogs))
	for _, b := range blogs {
		b = b.clone()
		if b.ID == "" {
			b.ID = s.newID()
		}
		next = append(next, b)
	}
	s.mu.Lock()
	s.blogs = next
	s.mu.Unlock()
}

func (s *Store) indexOf(id string) int {
	for i := range s.blogs {
		if s.blogs[i].ID == id {
			return i
		}
	}
	return -1
}

// merge applies p to b field by field, validating as it goes. b must be a
// private copy: on error it may be partially modified and must be discarded.
func merge(b *Blog, p BlogPatch) error {
	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}
	if p.Summary != nil {
		b.Summary = *p.Summary
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.CoverImage != nil {
		b.CoverImage = strings.TrimSpace(*p.CoverImage)
	}
	if p.Category != nil {
		if !p.Category.Valid() {
			return invalid("category", "must be one of trend, review, tip")
		}
		b.Category = *p.Category
	}
	if p.Status != nil {
		next := *p.Status
		if !next.Valid() {
			return invalid("status", "must be draft or published")
		}
		if b.Status == StatusPublished && next == StatusDraft {
			return invalid("status", "a published blog cannot return to draft")
		}
		b.Status = next
	}
	if p.AuthorID != nil {
		b.AuthorID = strings.TrimSpace(*p.AuthorID)
	}
	if p.Tags != nil {
		b.Tags = NormalizeTags(*p.Tags)
	}
	if p.Score != nil {
		if *p.Score < 0 || *p.Score > 100 {
			return invalid("score", "must be between 0 and 100")
		}
		v := *p.Score
		b.Score = &v
	}
	return nil
}
