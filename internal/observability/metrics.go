// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplus_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationsPublished counts notification broadcast events by outcome.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplus_notifications_published_total",
		Help: "Total number of notification broadcast events by outcome",
	}, []string{"outcome"})

	// EmailDispatches counts outgoing emails by kind and outcome.
	EmailDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplus_email_dispatches_total",
		Help: "Total number of outgoing emails by kind and outcome",
	}, []string{"kind", "outcome"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "marketplus_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplus_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)
