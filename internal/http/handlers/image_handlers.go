package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/phambaophuc/image-delivery/internal/services/delivery"
	"go.uber.org/zap"
)

type Deliverer interface {
	Deliver(ctx context.Context, key string, params map[string]string) (*delivery.Result, error)
}

type ImageHandler struct {
	delivery Deliverer
	logger   *zap.Logger
}

func NewImageHandler(delivery Deliverer, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		delivery: delivery,
		logger:   logger,
	}
}

// ServeImage handles GET {prefix}/*key. The wildcard keeps the slashes of
// nested keys.
func (h *ImageHandler) ServeImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	result, err := h.delivery.Deliver(c.Request.Context(), key, queryParams(c))
	switch {
	case errors.Is(err, delivery.ErrMissingAddress):
		respondError(c, http.StatusBadRequest, models.MsgMissingAddress)
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, models.MsgProcessingFailed)
		return
	}

	if result.Location != "" {
		c.Redirect(result.StatusCode, result.Location)
		return
	}

	c.Header("Cache-Control", result.CacheControl)
	c.Data(result.StatusCode, result.ContentType, result.Body)
}

// queryParams keeps the first value of every query parameter.
func queryParams(c *gin.Context) map[string]string {
	query := c.Request.URL.Query()
	params := make(map[string]string, len(query))
	for name, values := range query {
		if len(values) > 0 {
			params[name] = values[0]
		}
	}
	return params
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Error: message})
}
