package handlers

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/middleware"
	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Transcribe handles POST /transcribe
// Takes either an uploaded "audio" file or the "audio_id" of extracted audio.
// An uploaded file wins when both are sent.
//
// @Summary Transcribe audio
// @Description Transcribes an uploaded audio file, or previously extracted audio referenced by audio_id
// @Tags transcription
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file false "Audio file"
// @Param audio_id formData string false "ID returned by /extract-audio"
// @Success 200 {object} dto.TranscriptionResponse "Transcription"
// @Failure 400 {object} errors.APIError "No audio uploaded"
// @Failure 404 {object} errors.APIError "Unknown or expired audio_id"
// @Failure 413 {object} errors.APIError "Upload too large"
// @Failure 502 {object} errors.APIError "Transcription service failed"
// @Failure 504 {object} errors.APIError "Transcription service timed out"
// @Router /transcribe [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	header, found, err := formFile(c, "audio")
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	var response *dto.TranscriptionResponse
	if found {
		response, err = h.transcribeUpload(c, header)
	} else {
		response, err = h.transcribeReference(c)
	}
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *TranscriptionHandler) transcribeUpload(c *gin.Context, header *multipart.FileHeader) (*dto.TranscriptionResponse, error) {
	f, err := header.Open()
	if err != nil {
		return nil, errors.NewIOError("Failed to read upload")
	}
	defer f.Close()

	return h.service.TranscribeUpload(c.Request.Context(), dto.Upload{Filename: header.Filename, Content: f})
}

func (h *TranscriptionHandler) transcribeReference(c *gin.Context) (*dto.TranscriptionResponse, error) {
	var form dto.TranscribeForm
	if err := middleware.BindForm(c, &form); err != nil {
		if stderrors.Is(err, middleware.ErrEmptyBody) {
			return nil, errors.NewMissingFileError(errors.MsgNoAudio)
		}
		return nil, err
	}
	if form.AudioID == "" {
		return nil, errors.NewMissingFileError(errors.MsgNoAudio)
	}
	return h.service.TranscribeArtifact(c.Request.Context(), form.AudioID)
}
