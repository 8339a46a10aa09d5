package events

import "github.com/phambaophuc/image-delivery/internal/models"

// HealthCheck checks if RabbitMQ is available
func (p *AMQPPublisher) HealthCheck() string {
	if p.conn == nil || p.conn.IsClosed() {
		return models.StatusUnhealthy + ": connection closed"
	}

	if p.channel == nil {
		return models.StatusUnhealthy + ": channel not available"
	}

	return models.StatusHealthy
}
