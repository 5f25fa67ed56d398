package services

import (
	"github.com/prometheus/client_golang/prometheus"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/infrastructure/mq"
)

// publish hands e to the publisher worker without blocking the request.
// A full buffer drops the event and counts it.
func publish(events ports.EventPublisher, mCounter *prometheus.CounterVec, e mq.Event) {
	select {
	case events.GetInputChan() <- e:
	default:
		mCounter.WithLabelValues("event_dropped_total").Inc()
	}
}
