package blogdesk

import (
	"strings"
	"time"
)

// DefaultCoverImage is used when a blog is created without a cover image.
const DefaultCoverImage = "https://images.pexels.com/photos/3184291/pexels-photo-3184291.jpeg"

// DefaultTitle is the placeholder title for blogs created without one.
const DefaultTitle = "Untitled Blog"

// Category classifies a blog post.
type Category string

const (
	CategoryTrend  Category = "trend"
	CategoryReview Category = "review"
	CategoryTip    Category = "tip"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryTrend, CategoryReview, CategoryTip}

// ParseCategory accepts the singular and plural spellings ("trend", "trends").
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trend", "trends":
		return CategoryTrend, true
	case "review", "reviews":
		return CategoryReview, true
	case "tip", "tips":
		return CategoryTip, true
	}
	return "", false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryTrend || c == CategoryReview || c == CategoryTip
}

// UnmarshalText normalizes plural spellings. Unknown values are kept as-is
// so that validation can report them.
func (c *Category) UnmarshalText(b []byte) error {
	if parsed, ok := ParseCategory(string(b)); ok {
		*c = parsed
		return nil
	}
	*c = Category(b)
	return nil
}

// Status is the publishing state of a blog. The only supported transition is
// draft -> published.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Blog is the content entity owned by the Store.
type Blog struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Content    string    `json:"content"` // may contain HTML markup
	CoverImage string    `json:"cover_image"`
	Category   Category  `json:"category"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	AuthorID   string    `json:"author_id"`
	Tags       []string  `json:"tags"`
	Score      *int      `json:"score,omitempty"`
}

// clone returns a copy that shares no mutable state with b.
func (b Blog) clone() Blog {
	out := b
	out.Tags = append([]string{}, b.Tags...)
	if b.Score != nil {
		v := *b.Score
		out.Score = &v
	}
	return out
}

// BlogPatch carries the fields supplied by a create or update command.
// A nil field was omitted and keeps its prior (or default) value.
type BlogPatch struct {
	Title      *string   `json:"title,omitempty"`
	Summary    *string   `json:"summary,omitempty"`
	Content    *string   `json:"content,omitempty"`
	CoverImage *string   `json:"cover_image,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Status     *Status   `json:"status,omitempty"`
	AuthorID   *string   `json:"author_id,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Score      *int      `json:"score,omitempty"`
}

// Role is a user's permission level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// User is referenced by blogs through AuthorID. Blogs never own users.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
