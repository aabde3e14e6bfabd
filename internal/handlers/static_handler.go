package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StaticHandler serves the no-logic template pages.
type StaticHandler struct{}

// NewStaticHandler creates a new StaticHandler
func NewStaticHandler() *StaticHandler {
	return &StaticHandler{}
}

// RegisterStaticRoutes registers the about pages and the health check
func (h *StaticHandler) RegisterStaticRoutes(e *echo.Echo) {
	e.GET("/about/author/", h.AboutAuthor)
	e.GET("/about/tech/", h.AboutTech)
	e.GET("/health", h.HealthCheck)
}

func (h *StaticHandler) AboutAuthor(c echo.Context) error {
	return c.Render(http.StatusOK, "about_author.html", pageContext(c, echo.Map{
		"Title": "About the author",
	}))
}

func (h *StaticHandler) AboutTech(c echo.Context) error {
	return c.Render(http.StatusOK, "about_tech.html", pageContext(c, echo.Map{
		"Title": "Technologies",
	}))
}

func (h *StaticHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
