package middleware

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meeting-digest/internal/api/errors"
)

// StructuredLogging writes one zap entry per request
func StructuredLogging(logger *zap.Logger, skipPaths ...string) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    io.Discard,
		SkipPaths: skipPaths,
		Formatter: func(param gin.LogFormatterParams) string {
			requestID, _ := param.Keys[RequestIDKey].(string)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status", param.StatusCode),
				zap.Int64("latency_ms", param.Latency.Milliseconds()),
				zap.String("client_ip", param.ClientIP),
				zap.Int("body_size", param.BodySize),
			}
			if param.ErrorMessage != "" {
				fields = append(fields, zap.String("error", param.ErrorMessage))
			}

			switch {
			case param.StatusCode == errors.StatusClientClosedRequest:
				logger.Debug("HTTP Request", fields...)
			case param.StatusCode >= 500:
				logger.Error("HTTP Request", fields...)
			case param.StatusCode >= 400:
				logger.Warn("HTTP Request", fields...)
			default:
				logger.Info("HTTP Request", fields...)
			}
			return ""
		},
	})
}
