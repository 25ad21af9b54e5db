package handlers

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/middleware"
	"meeting-digest/internal/api/v1/services"
)

// ArtifactHandler serves extracted audio files
type ArtifactHandler struct {
	service services.ArtifactService
}

func NewArtifactHandler(service services.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{service: service}
}

// Download handles GET /artifacts/:id
//
// @Summary Download extracted audio
// @Tags media
// @Produce audio/mpeg
// @Param id path string true "Audio ID"
// @Success 200 {file} file "MP3 attachment"
// @Failure 404 {object} errors.APIError "Audio not found"
// @Router /artifacts/{id} [get]
func (h *ArtifactHandler) Download(c *gin.Context) {
	a, err := h.service.GetAudio(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Type", a.MimeType)
	c.FileAttachment(a.StoredPath, filepath.Base(a.StoredPath))
}
