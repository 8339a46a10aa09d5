package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-delivery/internal/http/handlers"
	"github.com/phambaophuc/image-delivery/internal/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	imageHandler  *handlers.ImageHandler
	objectHandler *handlers.ObjectHandler
	healthHandler *handlers.HealthHandler
	validator     middleware.KeyValidator
	imagePrefix   string
	logger        *zap.Logger
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	objectHandler *handlers.ObjectHandler,
	healthHandler *handlers.HealthHandler,
	validator middleware.KeyValidator,
	imagePrefix string,
	logger *zap.Logger,
) *Router {
	return &Router{
		imageHandler:  imageHandler,
		objectHandler: objectHandler,
		healthHandler: healthHandler,
		validator:     validator,
		imagePrefix:   imagePrefix,
		logger:        logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	router.GET(r.imagePrefix+"/*key", r.imageHandler.ServeImage)

	router.GET("/health", r.healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	objects := router.Group("/", middleware.RequireAPIKey(r.validator, r.logger))
	{
		objects.POST("/presigned-url", r.objectHandler.PresignedURL)
		objects.GET("/objects", r.objectHandler.ListObjects)
		objects.DELETE("/objects", r.objectHandler.DeleteObject)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image delivery is running",
		})
	})

	return router
}
