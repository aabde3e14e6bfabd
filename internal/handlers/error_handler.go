package handlers

import (
	"net/http"

	"github.com/dsavelev/postline/internal/middleware"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler maps failures to the fixed error pages: 404 for
// missing entities, 403 for CSRF/forbidden, the server-error page for
// everything else. Other client errors keep their status code so a
// malformed request is not reported as a server fault.
// Falls back to Echo's default handler if the template render fails.
func NewHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		var name, title string
		switch code {
		case http.StatusNotFound:
			name, title = "404.html", "Page not found"
		case http.StatusForbidden:
			name, title = "403.html", "Access denied"
		default:
			if code < http.StatusBadRequest || code >= http.StatusInternalServerError {
				code = http.StatusInternalServerError
			}
			name, title = "500.html", "Server error"
		}

		data := echo.Map{
			"Title": title,
			"Path":  c.Request().URL.Path,
			"User":  middleware.CurrentUser(c),
			"CSRF":  "",
		}
		if rerr := c.Render(code, name, data); rerr != nil {
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
}
