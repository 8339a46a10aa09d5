package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-delivery/internal/http/handlers"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/phambaophuc/image-delivery/internal/services/auth"
	"github.com/phambaophuc/image-delivery/internal/services/delivery"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type redirectDeliverer struct{}

func (redirectDeliverer) Deliver(_ context.Context, key string, _ map[string]string) (*delivery.Result, error) {
	return &delivery.Result{StatusCode: http.StatusFound, Location: "https://b.s3.amazonaws.com/" + key}, nil
}

type emptyObjects struct{}

func (emptyObjects) Presign(context.Context, *models.PresignRequest) (*models.PresignResponse, error) {
	return &models.PresignResponse{}, nil
}

func (emptyObjects) List(context.Context, models.ListObjectsQuery) (*models.ListObjectsResponse, error) {
	return &models.ListObjectsResponse{Objects: []models.ObjectSummary{}}, nil
}

func (emptyObjects) Delete(_ context.Context, req *models.DeleteRequest) (*models.DeleteResponse, error) {
	return &models.DeleteResponse{Deleted: true, Key: req.Key}, nil
}

type okStorage struct{}

func (okStorage) HealthCheck(context.Context) error { return nil }

type okEvents struct{}

func (okEvents) HealthCheck() string { return models.StatusHealthy }

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	return NewRouter(
		handlers.NewImageHandler(redirectDeliverer{}, logger),
		handlers.NewObjectHandler(emptyObjects{}, logger),
		handlers.NewHealthHandler(okStorage{}, nil, okEvents{}),
		auth.NewKeyValidator([]string{"secret"}, nil, ""),
		"/images",
		logger,
	).SetupRoutes()
}

func TestRoutes_ImageIsPublic(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/p/o/a.jpg", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://b.s3.amazonaws.com/p/o/a.jpg", w.Header().Get("Location"))
}

func TestRoutes_ObjectRoutesNeedKey(t *testing.T) {
	engine := newTestEngine()

	for _, tt := range []struct{ method, path string }{
		{http.MethodPost, "/presigned-url"},
		{http.MethodGet, "/objects?projectCode=p"},
		{http.MethodDelete, "/objects"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tt.method, tt.path)
	}

	req := httptest.NewRequest(http.MethodGet, "/objects?projectCode=p", nil)
	req.Header.Set("X-Api-Key", "secret")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"objects":[],"nextCursor":null}`, w.Body.String())
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	engine := newTestEngine()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRoutes_Banner(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Image delivery is running")
}
