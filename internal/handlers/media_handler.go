package handlers

import (
	"net/http"

	"github.com/dsavelev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// MediaHandler streams uploaded post images out of MongoDB.
type MediaHandler struct {
	imageRepository repositories.ImageRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(imageRepo repositories.ImageRepository) *MediaHandler {
	return &MediaHandler{imageRepository: imageRepo}
}

// RegisterMediaRoutes registers media-related routes
func (h *MediaHandler) RegisterMediaRoutes(e *echo.Echo) {
	e.GET("/media/:id", h.GetImage)
}

func (h *MediaHandler) GetImage(c echo.Context) error {
	image, err := h.imageRepository.GetImageByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Image not found")
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, image.Data)
}
