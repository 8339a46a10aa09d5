// Package app wires configuration into the services shared by the HTTP
// server and the Lambda binary.
package app

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-delivery/internal/config"
	"github.com/phambaophuc/image-delivery/internal/services/auth"
	"github.com/phambaophuc/image-delivery/internal/services/delivery"
	"github.com/phambaophuc/image-delivery/internal/services/events"
	"github.com/phambaophuc/image-delivery/internal/services/processor"
	"github.com/phambaophuc/image-delivery/internal/services/storage"
	"github.com/phambaophuc/image-delivery/internal/services/uploads"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Config    *config.Config
	Store     storage.ObjectStore
	Redis     *redis.Client
	Publisher events.Publisher
	Validator *auth.KeyValidator
	Delivery  *delivery.Service
	Uploads   *uploads.Service
}

// New builds every service. Redis and RabbitMQ are optional; a broker that
// cannot be reached is logged and replaced by a no-op publisher.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, err := storage.NewObjectStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, logger)
		if err != nil {
			logger.Warn("Failed to initialize event publisher", zap.Error(err))
		} else {
			publisher = amqpPublisher
		}
	}

	return &App{
		Config:    cfg,
		Store:     store,
		Redis:     redisClient,
		Publisher: publisher,
		Validator: auth.NewKeyValidator(cfg.Auth.APIKeys, redisClient, cfg.Auth.RedisSet),
		Delivery:  delivery.NewService(store, processor.NewImageProcessor(), logger),
		Uploads:   uploads.NewService(store, publisher, cfg.Upload, logger),
	}, nil
}

func (a *App) Close() {
	a.Publisher.Close()
	if a.Redis != nil {
		a.Redis.Close()
	}
}

// NewLogger returns a development logger when cfg asks for one.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
