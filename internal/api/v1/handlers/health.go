package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/v1/dto"
)

// Health handles GET /health
//
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
