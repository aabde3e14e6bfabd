package handlers

import (
	"errors"
	"net/http"

	"github.com/dsavelev/postline/internal/middleware"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// pageContext merges per-page data with the keys every template
// expects: the current user and the CSRF token.
func pageContext(c echo.Context, data echo.Map) echo.Map {
	data["User"] = middleware.CurrentUser(c)
	token, _ := c.Get("csrf").(string)
	data["CSRF"] = token
	return data
}

// repoError maps a repository lookup failure to the right HTTP error.
func repoError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// truncate shortens post text for page titles.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
