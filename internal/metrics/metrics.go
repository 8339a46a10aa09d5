// Package metrics provides Prometheus metrics for image delivery and the
// object API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "imagedelivery"

const (
	OutcomeRedirect    = "redirect"
	OutcomeTransformed = "transformed"
	OutcomeBadRequest  = "bad_request"
	OutcomeError       = "error"
)

var (
	// DeliveryTotal counts delivery requests by outcome.
	DeliveryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_requests_total",
			Help:      "Total number of image delivery requests",
		},
		[]string{"outcome"},
	)

	// TransformDuration measures the fetch-to-encode pipeline.
	TransformDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transform_duration_seconds",
			Help:      "Duration of image transforms in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"content_type"},
	)

	// ObjectOperations counts object API calls.
	ObjectOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "object_operations_total",
			Help:      "Total number of object API operations",
		},
		[]string{"operation", "status"},
	)
)

func RecordDelivery(outcome string) {
	DeliveryTotal.WithLabelValues(outcome).Inc()
}

func RecordTransform(contentType string, seconds float64) {
	DeliveryTotal.WithLabelValues(OutcomeTransformed).Inc()
	TransformDuration.WithLabelValues(contentType).Observe(seconds)
}

func RecordObjectOperation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ObjectOperations.WithLabelValues(operation, status).Inc()
}
