package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one structured line per request. Server errors are logged at
// error level so they surface in alerting.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(params gin.LogFormatterParams) string {
		level := zapcore.InfoLevel
		switch {
		case params.StatusCode >= http.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case params.StatusCode >= http.StatusBadRequest:
			level = zapcore.WarnLevel
		}

		logger.Log(level, "HTTP Request",
			zap.String("method", params.Method),
			zap.String("path", params.Path),
			zap.Int("status", params.StatusCode),
			zap.Int("bytes", params.BodySize),
			zap.Duration("latency", params.Latency),
			zap.String("client_ip", params.ClientIP),
			zap.String("user_agent", params.Request.UserAgent()),
		)
		return ""
	})
}
