package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/redis/go-redis/v9"
)

type StorageChecker interface {
	HealthCheck(ctx context.Context) error
}

type EventsChecker interface {
	HealthCheck() string
}

type HealthHandler struct {
	storage StorageChecker
	redis   *redis.Client
	events  EventsChecker
}

// NewHealthHandler builds the handler. redisClient may be nil.
func NewHealthHandler(storage StorageChecker, redisClient *redis.Client, events EventsChecker) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		redis:   redisClient,
		events:  events,
	}
}

// HealthCheck reports the state of each dependency and answers 503 when the
// overall status is unhealthy.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	services := h.checkServices(c.Request.Context())
	overall := calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == models.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.HealthCheck{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  services,
	})
}

func (h *HealthHandler) checkServices(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	services := map[string]string{
		"storage": models.StatusHealthy,
		"redis":   models.StatusNotConfigured,
		"events":  h.events.HealthCheck(),
	}

	if err := h.storage.HealthCheck(ctx); err != nil {
		services["storage"] = models.Unhealthy(err)
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			services["redis"] = models.Unhealthy(err)
		} else {
			services["redis"] = models.StatusHealthy
		}
	}

	return services
}

func calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != models.StatusHealthy && status != models.StatusNotConfigured {
			return models.StatusUnhealthy
		}
	}
	return models.StatusHealthy
}
