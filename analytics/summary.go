package analytics

import (
	"fmt"
	"time"
)

// CountByCategory counts entries per category. Unknown categories are ignored.
func CountByCategory(entries []Entry) CategoryCounts {
	var c CategoryCounts
	for _, e := range entries {
		switch e.Category {
		case CategoryTrend:
			c.Trend++
		case CategoryReview:
			c.Review++
		case CategoryTip:
			c.Tip++
		}
	}
	return c
}

// CountByStatus counts published and draft entries.
func CountByStatus(entries []Entry) StatusCounts {
	var c StatusCounts
	for _, e := range entries {
		switch e.Status {
		case StatusPublished:
			c.Published++
		case StatusDraft:
			c.Draft++
		}
	}
	return c
}

// AverageScore is the rounded mean score with missing scores counted as 0.
// It is 0 for an empty slice.
func AverageScore(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		if e.Score != nil {
			sum += *e.Score
		}
	}
	return round(float64(sum) / float64(len(entries)))
}

// MonthlyCounts buckets entries by creation month over the trailing n calendar
// months ending at now's month, oldest first. Entries older than the window or
// created in a future month are left out. Creation times are converted to
// now's location before bucketing.
func MonthlyCounts(entries []Entry, now time.Time, n int) []MonthCount {
	if n <= 0 {
		return []MonthCount{}
	}
	start := TruncateMonth(now)
	buckets := make([]MonthCount, n)
	for i := 0; i < n; i++ {
		m := start.AddDate(0, i-(n-1), 0)
		buckets[i] = MonthCount{
			Label: monthLabel(m),
			Year:  m.Year(),
			Month: m.Month(),
		}
	}
	current := monthIndex(now)
	for _, e := range entries {
		diff := current - monthIndex(e.CreatedAt.In(now.Location()))
		if diff >= 0 && diff < n {
			buckets[n-1-diff].Count++
		}
	}
	return buckets
}

// Balanced reports whether every pair of category counts differs by at most two.
func Balanced(c CategoryCounts) bool {
	return abs(c.Trend-c.Review) <= balanceTolerance &&
		abs(c.Trend-c.Tip) <= balanceTolerance &&
		abs(c.Review-c.Tip) <= balanceTolerance
}

// ScoreHealth classifies an average score.
func ScoreHealth(avg int) string {
	switch {
	case avg >= 80:
		return HealthGood
	case avg >= 60:
		return HealthModerate
	default:
		return HealthPoor
	}
}

// Fresh reports whether the newest month bucket has any content.
func Fresh(months []MonthCount) bool {
	return len(months) > 0 && months[len(months)-1].Count > 0
}

// Recommendations turns a partially computed summary into editorial advice.
func Recommendations(s Summary) []string {
	recs := []string{}
	c := s.Categories
	if c.Trend < c.Review && c.Trend < c.Tip {
		recs = append(recs, "Create more trend articles to balance your content")
	}
	if c.Review < c.Trend && c.Review < c.Tip {
		recs = append(recs, "Add more product reviews to your content mix")
	}
	if c.Tip < c.Trend && c.Tip < c.Review {
		recs = append(recs, "Increase shopping tips content for better balance")
	}
	if s.AverageScore < 70 {
		recs = append(recs, "Improve scores by reviewing keyword usage and content structure")
	}
	if d := s.Statuses.Draft; d > 0 {
		noun := "articles"
		if d == 1 {
			noun = "article"
		}
		recs = append(recs, fmt.Sprintf("Publish %d draft %s to increase your content library", d, noun))
	}
	if stale(s.Months, 3) {
		recs = append(recs, "Publish new content regularly to maintain freshness")
	}
	return recs
}

// stale reports whether the last k month buckets are all empty.
func stale(months []MonthCount, k int) bool {
	if len(months) < k {
		k = len(months)
	}
	for _, m := range months[len(months)-k:] {
		if m.Count > 0 {
			return false
		}
	}
	return true
}

// Compute builds the Summary for entries as of now over the default window.
func Compute(entries []Entry, now time.Time) Summary {
	return ComputeWindow(entries, now, DefaultMonths)
}

// ComputeWindow is Compute with an explicit month window.
func ComputeWindow(entries []Entry, now time.Time, months int) Summary {
	s := Summary{
		GeneratedAt: now,
		Total:       len(entries),
		Statuses:    CountByStatus(entries),
		Categories:  CountByCategory(entries),
		Months:      MonthlyCounts(entries, now, months),
	}
	s.CategoryShare = CategoryCounts{
		Trend:  percent(s.Categories.Trend, s.Total),
		Review: percent(s.Categories.Review, s.Total),
		Tip:    percent(s.Categories.Tip, s.Total),
	}
	s.AverageScore = AverageScore(entries)
	s.ScoreHealth = ScoreHealth(s.AverageScore)
	s.Balanced = Balanced(s.Categories)
	s.Fresh = Fresh(s.Months)
	s.Recommendations = Recommendations(s)
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
