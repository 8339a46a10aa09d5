package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/phambaophuc/image-delivery/internal/services/uploads"
	"go.uber.org/zap"
)

type ObjectService interface {
	Presign(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error)
	List(ctx context.Context, q models.ListObjectsQuery) (*models.ListObjectsResponse, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResponse, error)
}

type ObjectHandler struct {
	objects ObjectService
	logger  *zap.Logger
}

func NewObjectHandler(objects ObjectService, logger *zap.Logger) *ObjectHandler {
	return &ObjectHandler{
		objects: objects,
		logger:  logger,
	}
}

func (h *ObjectHandler) PresignedURL(c *gin.Context) {
	var req models.PresignRequest
	if !h.decodeBody(c, &req) {
		return
	}

	resp, err := h.objects.Presign(c.Request.Context(), &req)
	if err != nil {
		h.respondServiceError(c, "presign", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ObjectHandler) ListObjects(c *gin.Context) {
	resp, err := h.objects.List(c.Request.Context(), models.ListObjectsQuery{
		ProjectCode: c.Query("projectCode"),
		OwnerKey:    c.Query("ownerKey"),
		Folder:      c.Query("folder"),
		Limit:       c.Query("limit"),
		Cursor:      c.Query("cursor"),
		IncludeTags: c.Query("includeTags") == "true",
	})
	if err != nil {
		h.respondServiceError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ObjectHandler) DeleteObject(c *gin.Context) {
	var req models.DeleteRequest
	if !h.decodeBody(c, &req) {
		return
	}

	resp, err := h.objects.Delete(c.Request.Context(), &req)
	if err != nil {
		h.respondServiceError(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ObjectHandler) decodeBody(c *gin.Context, v interface{}) bool {
	body, err := c.GetRawData()
	if err != nil {
		h.respondServiceError(c, "read body", err)
		return false
	}
	if err := uploads.DecodeBody(body, v); err != nil {
		h.respondServiceError(c, "decode body", err)
		return false
	}
	return true
}

func (h *ObjectHandler) respondServiceError(c *gin.Context, operation string, err error) {
	var inputErr *uploads.InputError
	if errors.As(err, &inputErr) {
		respondError(c, http.StatusBadRequest, inputErr.Message)
		return
	}

	h.logger.Error("Object operation failed",
		zap.String("operation", operation),
		zap.Error(err))
	respondError(c, http.StatusInternalServerError, models.MsgInternalError)
}
