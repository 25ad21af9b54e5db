package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/middleware"
	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/api/v1/services"
)

// MediaHandler handles audio extraction
type MediaHandler struct {
	service services.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service services.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// ExtractAudio handles POST /extract-audio
// Accepts multipart field "video" and returns the derived MP3's name and id.
//
// @Summary Extract audio from a video
// @Description Encodes the first audio track of the uploaded video to MP3. The MP3 stays available until expires_at.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Video file"
// @Success 200 {object} dto.ExtractAudioResponse "Audio extracted"
// @Failure 400 {object} errors.APIError "No video uploaded, unsafe name or unsupported type"
// @Failure 413 {object} errors.APIError "Upload too large"
// @Failure 422 {object} errors.APIError "Undecodable video or no audio track"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /extract-audio [post]
func (h *MediaHandler) ExtractAudio(c *gin.Context) {
	header, found, err := formFile(c, "video")
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if !found {
		middleware.HandleError(c, errors.NewMissingFileError(errors.MsgNoVideo))
		return
	}

	f, err := header.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewIOError("Failed to read upload"))
		return
	}
	defer f.Close()

	response, err := h.service.ExtractAudio(c.Request.Context(), dto.Upload{Filename: header.Filename, Content: f})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
