package kafka_middleware

import (
	"context"
	"time"

	"pgstay/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts published events and publish latency per event type.
type Metrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Events published successfully.",
		}, []string{"event_type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "messages_failed_total",
			Help:      "Events that could not be published.",
		}, []string{"event_type", "error_type"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "publish_duration_seconds",
			Help:      "Publish latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
	}
	if reg != nil {
		reg.MustRegister(m.published, m.failed, m.duration)
	}
	return m
}

func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		eventType := msg.GetEventType()

		err := next(ctx, msg)

		m.duration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())
		if err != nil {
			m.failed.WithLabelValues(eventType, kafka.ClassifyError(err).String()).Inc()
		} else {
			m.published.WithLabelValues(eventType).Inc()
		}

		return err
	}
}
