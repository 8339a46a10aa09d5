package events

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Publisher announces changes made through the object API.
type Publisher interface {
	Publish(ctx context.Context, event *models.ObjectEvent) error
	HealthCheck() string
	Close() error
}

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	conn      *amqp.Connection
	channel   amqpChannel
	logger    *zap.Logger
	queueName string
}

func NewAMQPPublisher(rabbitmqURL, queueName string, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPPublisher{
		conn:      conn,
		channel:   channel,
		logger:    logger,
		queueName: queueName,
	}, nil
}

// Close closes the queue connection
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *models.ObjectEvent) error { return nil }
func (NopPublisher) HealthCheck() string                               { return models.StatusNotConfigured }
func (NopPublisher) Close() error                                       { return nil }
