package blogdesk

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the App renders for HTML routes.
// Any nil field falls back to the built-in default.
type ViewFuncs struct {
	Preview     func(blog Blog, author User, related []Blog, siteURL string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Preview == nil {
		v.Preview = DefaultPreview
	}
	if v.NotFound == nil {
		v.NotFound = DefaultNotFound
	}
	if v.ServerError == nil {
		v.ServerError = DefaultServerError
	}
}

// DefaultPreview renders a blog the way a reader would see it. The content
// body passes through SanitizeHTML before it is written.
func DefaultPreview(blog Blog, author User, related []Blog, siteURL string) templ.Component {
	return previewPage(blog, author, related, siteURL)
}

// DefaultNotFound renders a minimal 404 page.
func DefaultNotFound() templ.Component {
	return statusPage("Not found", "The page you are looking for does not exist.")
}

// DefaultServerError renders a minimal 500 page.
func DefaultServerError() templ.Component {
	return statusPage("Something went wrong", "Please try again in a moment.")
}

func authorName(blog Blog, author User) string {
	if author.Name != "" {
		return author.Name
	}
	return blog.AuthorID
}

// Render writes cmp as a 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes cmp as an HTML response with the given status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response())
}
