package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/phambaophuc/image-delivery/internal/services/auth"
	"go.uber.org/zap"
)

const APIKeyHeader = "X-Api-Key"

type KeyValidator interface {
	Validate(ctx context.Context, apiKey string) error
}

// RequireAPIKey rejects requests whose X-Api-Key is missing or not accepted.
func RequireAPIKey(validator KeyValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		err := validator.Validate(ctx.Request.Context(), ctx.GetHeader(APIKeyHeader))
		if err == nil {
			ctx.Next()
			return
		}

		if msg, ok := auth.RejectionMessage(err); ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: msg})
			return
		}

		logger.Error("API key validation failed", zap.Error(err))
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.MsgInternalError,
		})
	}
}
