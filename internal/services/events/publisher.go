package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// NewObjectEvent stamps an event with a fresh id and the current time.
func NewObjectEvent(eventType, bucket, key, contentType string) *models.ObjectEvent {
	return &models.ObjectEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Bucket:      bucket,
		Key:         key,
		ContentType: contentType,
		OccurredAt:  time.Now().UTC(),
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event *models.ObjectEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.Publish(
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			MessageId:    event.ID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Event published",
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.String("key", event.Key))
	return nil
}
