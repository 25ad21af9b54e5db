package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/middleware"
	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/api/v1/services"
)

// PipelineHandler runs the whole video to summary chain in one request
type PipelineHandler struct {
	service services.PipelineService
}

func NewPipelineHandler(service services.PipelineService) *PipelineHandler {
	return &PipelineHandler{service: service}
}

// Process handles POST /process
//
// @Summary Extract, transcribe and summarize a video
// @Tags pipeline
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Video file"
// @Success 200 {object} dto.PipelineResponse "Pipeline result"
// @Failure 400 {object} errors.APIError "No video uploaded"
// @Failure 413 {object} errors.APIError "Upload too large"
// @Failure 422 {object} errors.APIError "Undecodable video or no audio track"
// @Failure 502 {object} errors.APIError "Upstream service failed"
// @Failure 504 {object} errors.APIError "Upstream service timed out"
// @Router /process [post]
func (h *PipelineHandler) Process(c *gin.Context) {
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

	response, err := h.service.Process(c.Request.Context(), dto.Upload{Filename: header.Filename, Content: f})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
