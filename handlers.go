package blogdesk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogdesk/analytics"
	"github.com/eringen/blogdesk/generate"
	"github.com/eringen/blogdesk/markdown"
)

const (
	maxBodySize = 1 << 20 // 1MB
	maxRecent   = 100
)

// decodeJSON decodes the request body into v, rejecting unknown fields and
// trailing data.
func decodeJSON(c echo.Context, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(c.Response(), c.Request().Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if dec.More() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: trailing data")
	}
	return nil
}

func (a *App) handleListBlogs(c echo.Context) error {
	q, err := ParseQuery(c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Filter(a.Store.List(), q))
}

func (a *App) handleRecentBlogs(c echo.Context) error {
	n, err := parseLimit(c.QueryParam("limit"), a.Config.RecentLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Recent(a.Store.List(), n))
}

func parseLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxRecent {
		return 0, invalid("limit", fmt.Sprintf("must be a number between 1 and %d", maxRecent))
	}
	return n, nil
}

func (a *App) handleGetBlog(c echo.Context) error {
	b, err := a.Store.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (a *App) handleCreateBlog(c echo.Context) error {
	var p BlogPatch
	if err := decodeJSON(c, &p); err != nil {
		return err
	}
	required := []struct {
		field string
		value *string
	}{{"title", p.Title}, {"summary", p.Summary}, {"content", p.Content}}
	for _, r := range required {
		if r.value == nil || strings.TrimSpace(*r.value) == "" {
			return invalid(r.field, "is required")
		}
	}
	if p.AuthorID == nil || strings.TrimSpace(*p.AuthorID) == "" {
		if u, ok := a.CurrentUser(c); ok {
			p.AuthorID = Ptr(u.ID)
		}
	}
	b, err := a.Store.Create(p)
	if err != nil {
		return err
	}
	a.Metrics.Mutation("create")
	c.Response().Header().Set(echo.HeaderLocation, "/api/blogs/"+b.ID)
	return c.JSON(http.StatusCreated, b)
}

func (a *App) handleUpdateBlog(c echo.Context) error {
	var p BlogPatch
	if err := decodeJSON(c, &p); err != nil {
		return err
	}
	b, err := a.Store.Update(c.Param("id"), p)
	if err != nil {
		return err
	}
	a.Metrics.Mutation("update")
	return c.JSON(http.StatusOK, b)
}

func (a *App) handleDeleteBlog(c echo.Context) error {
	if a.Store.Delete(c.Param("id")) {
		a.Metrics.Mutation("delete")
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Users.List())
}

func (a *App) handleGetUser(c echo.Context) error {
	u, err := a.Users.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

type generateResponse struct {
	Content string `json:"content"`
	HTML    string `json:"html"`
}

func (a *App) handleGenerate(c echo.Context) error {
	u, _ := a.CurrentUser(c)
	if !a.generateLimiter.Allow(u.ID) {
		a.Metrics.Generation("rejected")
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many generation requests, try again later")
	}
	var req generate.Request
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	req, err := req.Normalize()
	if err != nil {
		a.Metrics.Generation("rejected")
		return err
	}
	content, err := a.Generator.Generate(c.Request().Context(), req)
	if err != nil {
		a.Metrics.Generation("failed")
		return err
	}
	if strings.TrimSpace(content) == "" {
		a.Metrics.Generation("failed")
		return &generate.Error{Op: "empty", Err: errors.New("empty content")}
	}
	a.Metrics.Generation("ok")
	return c.JSON(http.StatusOK, generateResponse{Content: content, HTML: markdown.ToHTML(content)})
}

type dashboardResponse struct {
	Summary analytics.Summary `json:"summary"`
	Recent  []Blog            `json:"recent"`
}

func (a *App) handleDashboard(c echo.Context) error {
	blogs := a.Store.List()
	return c.JSON(http.StatusOK, dashboardResponse{
		Summary: analytics.Compute(Entries(blogs), a.now()),
		Recent:  Recent(blogs, a.Config.RecentLimit),
	})
}

// handlePreview renders a blog page. Published blogs are public; drafts are
// only shown to signed-in users and look missing to everyone else.
func (a *App) handlePreview(c echo.Context) error {
	b, err := a.Store.Get(c.Param("id"))
	if err != nil {
		return err
	}
	if b.Status != StatusPublished {
		if _, ok := a.CurrentUser(c); !ok {
			return ErrNotFound
		}
	}
	author, _ := a.Users.Get(b.AuthorID)
	related := RelatedBlogs(b, published(a.Store.List()))
	return Render(c, a.Views.Preview(b, author, related, a.Config.URL))
}

// published returns the published blogs, most recently updated first.
func published(blogs []Blog) []Blog {
	out := Filter(blogs, Query{Status: StatusPublished})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, published(a.Store.List()))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, published(a.Store.List()))
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nDisallow: /api/\nDisallow: /analytics/\nSitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// classifyError maps an error to a status code and response body.
func classifyError(err error) (int, errorResponse) {
	var (
		ve *ValidationError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, errorResponse{Error: ve.Error(), Field: ve.Field}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, generate.ErrInvalidRequest):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, ErrGeneration):
		return http.StatusBadGateway, errorResponse{Error: "content generation failed", Retryable: true}
	case errors.As(err, &he):
		return he.Code, errorResponse{Error: fmt.Sprint(he.Message)}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, body := classifyError(err)
	switch {
	case code == http.StatusBadGateway:
		c.Logger().Warnf("generation failed: %v", err)
	case code >= 500:
		c.Logger().Errorf("server error: %v", err)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if err := c.JSON(code, body); err != nil {
			c.Logger().Errorf("write error response: %v", err)
		}
		return
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound())
	case code >= 500:
		_ = RenderStatus(c, code, a.Views.ServerError())
	default:
		_ = c.String(code, body.Error)
	}
}
