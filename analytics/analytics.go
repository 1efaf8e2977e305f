// Package analytics derives content statistics from a snapshot of blog entries.
// Every function is pure: results depend only on the entries and the clock
// value passed in, and nothing is cached between calls.
package analytics

import (
	"fmt"
	"math"
	"time"
)

// Category and status values as stored on blogs.
const (
	CategoryTrend  = "trend"
	CategoryReview = "review"
	CategoryTip    = "tip"

	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Score health levels.
const (
	HealthGood     = "good"
	HealthModerate = "moderate"
	HealthPoor     = "needs improvement"
)

// DefaultMonths is the trailing window used for month buckets.
const DefaultMonths = 6

// balanceTolerance is the largest pairwise gap between category counts that
// still counts as balanced.
const balanceTolerance = 2

// Entry is the subset of a blog the aggregations need. It mirrors the blog
// type to avoid an import cycle with the root package.
type Entry struct {
	ID        string
	Title     string
	Category  string
	Status    string
	Score     *int // nil counts as 0
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryCounts holds one number per category.
type CategoryCounts struct {
	Trend  int `json:"trend"`
	Review int `json:"review"`
	Tip    int `json:"tip"`
}

// StatusCounts holds one number per status.
type StatusCounts struct {
	Published int `json:"published"`
	Draft     int `json:"draft"`
}

// MonthCount is the number of entries created in one calendar month.
type MonthCount struct {
	Label string     `json:"label"` // e.g. "Apr 2025"
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// Summary is the full analytics view over a snapshot.
type Summary struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	Total           int            `json:"total"`
	Statuses        StatusCounts   `json:"statuses"`
	Categories      CategoryCounts `json:"categories"`
	CategoryShare   CategoryCounts `json:"category_share"` // percent of Total, rounded
	AverageScore    int            `json:"average_score"`
	ScoreHealth     string         `json:"score_health"`
	Balanced        bool           `json:"balanced"`
	Fresh           bool           `json:"fresh"`
	Months          []MonthCount   `json:"months"`
	Recommendations []string       `json:"recommendations"`
}

// round rounds half up, matching how the dashboard has always displayed numbers.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// percent returns part/total as a rounded percentage, 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return round(float64(part) * 100 / float64(total))
}

// monthIndex returns year*12 + month, the ordinal used for month arithmetic.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// TruncateMonth returns the first instant of t's month in t's location.
func TruncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String()[:3], t.Year())
}
