package blogdesk

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user"`
	CSRFToken     string `json:"csrf_token"`
}

// handleSession reports the signed-in user and hands out the CSRF token that
// every unsafe request must echo in the X-CSRF-Token header.
func (a *App) handleSession(c echo.Context) error {
	resp := sessionResponse{CSRFToken: CsrfToken(c)}
	if u, ok := a.CurrentUser(c); ok {
		resp.Authenticated = true
		resp.User = &u
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	u, found := a.Users.ByEmail(req.Email)
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.Config.LoginPassword)) == 1
	if !found || !passOK {
		a.loginLimiter.Record(ip)
		c.Logger().Warnf("failed login for %q from %s", req.Email, ip)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err := setUserSession(c, u.ID); err != nil {
		return err
	}
	a.loginLimiter.Reset(ip)
	c.Set(userContextKey, u)
	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: &u, CSRFToken: CsrfToken(c)})
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearUserSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
