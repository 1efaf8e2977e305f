package analytics

import (
	"net/http"
	"time"

	"github.com/eringen/blogdesk/analytics/templates"
	"github.com/labstack/echo/v4"
)

// Source returns the current snapshot of entries.
type Source func() []Entry

// Handler handles analytics HTTP requests.
type Handler struct {
	source Source
	now    func() time.Time
}

// NewHandler creates a new analytics handler. A nil clock uses time.Now.
func NewHandler(source Source, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{source: source, now: now}
}

// SummaryResponse is the JSON response for the summary endpoint.
type SummaryResponse struct {
	Summary Summary `json:"summary"`
	Period  string  `json:"period"`
}

// Summary computes the summary for the requested period as of the handler's clock.
func (h *Handler) Summary(period string) (Summary, string) {
	period, months := parsePeriod(period)
	return ComputeWindow(h.source(), h.now(), months), period
}

// GetSummary returns the analytics summary as JSON.
func (h *Handler) GetSummary(c echo.Context) error {
	s, period := h.Summary(c.QueryParam("period"))
	return c.JSON(http.StatusOK, SummaryResponse{Summary: s, Period: period})
}

// GetSummaryFragment returns the HTML fragment for the summary (htmx).
func (h *Handler) GetSummaryFragment(c echo.Context) error {
	s, _ := h.Summary(c.QueryParam("period"))
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return templates.SummaryFragment(convertSummaryToViewModel(s)).Render(c.Request().Context(), c.Response())
}

// DashboardHTML serves the standalone analytics page.
func (h *Handler) DashboardHTML(c echo.Context) error {
	url := "/analytics/fragments/summary"
	if p := c.QueryParam("period"); p != "" {
		period, _ := parsePeriod(p)
		url += "?period=" + period
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return templates.Dashboard(url).Render(c.Request().Context(), c.Response())
}

// RegisterRoutes registers analytics routes with the Echo router. Every route
// sits behind authMiddleware.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	e.GET("/api/analytics", h.GetSummary, authMiddleware)

	page := e.Group("/analytics")
	page.Use(authMiddleware)
	page.GET("/", h.DashboardHTML)
	page.GET("/fragments/summary", h.GetSummaryFragment)
}

// parsePeriod maps the period query parameter to a month window.
func parsePeriod(period string) (string, int) {
	switch period {
	case "quarter":
		return period, 3
	case "year":
		return period, 12
	default:
		return "half", DefaultMonths
	}
}

// convertSummaryToViewModel converts a Summary to templates.SummaryViewModel.
func convertSummaryToViewModel(s Summary) templates.SummaryViewModel {
	vm := templates.SummaryViewModel{
		GeneratedAt:     s.GeneratedAt.Format("2006-01-02 15:04"),
		Total:           s.Total,
		Published:       s.Statuses.Published,
		Draft:           s.Statuses.Draft,
		AverageScore:    s.AverageScore,
		ScoreHealth:     s.ScoreHealth,
		Balanced:        s.Balanced,
		Fresh:           s.Fresh,
		Recommendations: s.Recommendations,
		Categories: []templates.CategoryStatViewModel{
			{Name: "Trends", Count: s.Categories.Trend, Share: s.CategoryShare.Trend},
			{Name: "Reviews", Count: s.Categories.Review, Share: s.CategoryShare.Review},
			{Name: "Tips", Count: s.Categories.Tip, Share: s.CategoryShare.Tip},
		},
	}

	busiest := 0
	for _, m := range s.Months {
		if m.Count > busiest {
			busiest = m.Count
		}
	}
	vm.Months = make([]templates.MonthViewModel, len(s.Months))
	for i, m := range s.Months {
		vm.Months[i] = templates.MonthViewModel{Label: m.Label, Count: m.Count}
		if busiest > 0 {
			vm.Months[i].Width = percent(m.Count, busiest)
		}
	}
	return vm
}
