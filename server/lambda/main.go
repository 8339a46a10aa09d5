package main

import (
	"context"
	"log"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/phambaophuc/image-delivery/internal/app"
	"github.com/phambaophuc/image-delivery/internal/config"
	"github.com/phambaophuc/image-delivery/internal/lambda"
	"go.uber.org/zap"
)

// One binary serves every function; LAMBDA_HANDLER picks which.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	application, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	adapter := lambda.NewAdapter(application.Delivery, application.Uploads, application.Validator, logger)
	handler, err := adapter.Handler(cfg.Lambda.Handler)
	if err != nil {
		logger.Fatal("Invalid lambda handler", zap.Error(err))
	}

	logger.Info("Starting lambda", zap.String("handler", cfg.Lambda.Handler))
	awslambda.Start(handler)
}
