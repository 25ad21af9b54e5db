package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meeting-digest/internal/api/errors"
)

// ErrorHandler recovers panics and answers with a generic internal error
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestID := c.GetString(RequestIDKey)

		if apiErr, ok := recovered.(*errors.APIError); ok {
			apiErr.RequestID = requestID
			c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
			return
		}

		logger.Error("Recovered from panic",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("recovered", fmt.Sprint(recovered)),
			zap.Stack("stack"))

		apiErr := errors.NewInternalError("Internal server error")
		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as the response. Errors that are not *APIError are
// attached to the context for the access log and answered with a generic 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr, ok := err.(*errors.APIError)
	if !ok {
		apiErr = errors.NewInternalError("Internal server error")
	}
	_ = c.Error(err)

	apiErr.RequestID = c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
