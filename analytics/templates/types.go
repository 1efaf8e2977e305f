// Package templates contains view model types and components for the
// analytics page. The view models mirror the analytics types to avoid import
// cycles.
package templates

import (
	"fmt"

	"github.com/a-h/templ"
)

// SummaryViewModel represents an analytics summary for templating.
type SummaryViewModel struct {
	GeneratedAt     string
	Total           int
	Published       int
	Draft           int
	AverageScore    int
	ScoreHealth     string
	Balanced        bool
	Fresh           bool
	Categories      []CategoryStatViewModel
	Months          []MonthViewModel
	Recommendations []string
}

// CategoryStatViewModel represents one category bar.
type CategoryStatViewModel struct {
	Name  string
	Count int
	Share int // percent
}

// MonthViewModel represents one month bucket.
type MonthViewModel struct {
	Label string
	Count int
	Width int // bar width in percent of the busiest month
}

// ScoreLabel formats the average score with its health, e.g. "90 (good)".
func (vm SummaryViewModel) ScoreLabel() string {
	return fmt.Sprintf("%d (%s)", vm.AverageScore, vm.ScoreHealth)
}

func barWidth(pct int) templ.SafeCSS {
	pct = max(0, min(pct, 100))
	return templ.SafeCSS(fmt.Sprintf("width:%d%%;", pct))
}
