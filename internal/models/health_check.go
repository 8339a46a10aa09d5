package models

import "time"

const (
	StatusHealthy       = "healthy"
	StatusUnhealthy     = "unhealthy"
	StatusNotConfigured = "not configured"
)

type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Unhealthy formats a failed dependency check for the Services map.
func Unhealthy(err error) string {
	return StatusUnhealthy + ": " + err.Error()
}
