package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillhub/quill/backend/internal/repositories"
)

// MediaHandler serves stored post images
type MediaHandler struct {
	mediaRepository repositories.MediaRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository) *MediaHandler {
	return &MediaHandler{mediaRepository: mediaRepo}
}

// RegisterMediaRoutes registers the media route
func (h *MediaHandler) RegisterMediaRoutes(e *echo.Echo) {
	e.GET("/media/:id", h.GetMedia)
}

// GetMedia streams an image attachment with its stored content type
func (h *MediaHandler) GetMedia(c echo.Context) error {
	if h.mediaRepository == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}

	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}

	contentType := media.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, media.Data)
}
