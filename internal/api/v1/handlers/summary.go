package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/middleware"
	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/api/v1/services"
)

// SummaryHandler handles summarization
type SummaryHandler struct {
	service services.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service services.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Summarize handles POST /summarize
//
// @Summary Summarize a transcript
// @Tags summary
// @Accept json
// @Produce json
// @Param request body dto.SummarizeRequest true "Text to summarize"
// @Success 200 {object} dto.SummaryResponse "Summary"
// @Failure 400 {object} errors.APIError "No text provided"
// @Failure 502 {object} errors.APIError "Summarization service failed"
// @Failure 504 {object} errors.APIError "Summarization service timed out"
// @Router /summarize [post]
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		if stderrors.Is(err, middleware.ErrEmptyBody) {
			err = errors.NewInvalidArgumentError(errors.MsgNoText, nil)
		}
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Summarize(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
