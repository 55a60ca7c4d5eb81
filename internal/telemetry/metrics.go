// Package telemetry records bridge metrics through the OpenTelemetry metric
// API. All recorder methods are nil-safe so callers can carry a nil *Metrics
// when metrics are disabled.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "a2dp-bridge"

// Metrics holds the bridge instrument set.
type Metrics struct {
	nativeCalls     metric.Int64Counter
	eventsForwarded metric.Int64Counter
	eventsDropped   metric.Int64Counter
}

// NewMetrics creates the bridge instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	nativeCalls, err := meter.Int64Counter("a2dp.bridge.native_calls",
		metric.WithDescription("Number of outbound stack calls"),
	)
	if err != nil {
		return nil, err
	}

	eventsForwarded, err := meter.Int64Counter("a2dp.bridge.events_forwarded",
		metric.WithDescription("Number of stack events delivered to the service"),
	)
	if err != nil {
		return nil, err
	}

	eventsDropped, err := meter.Int64Counter("a2dp.bridge.events_dropped",
		metric.WithDescription("Number of stack events dropped because no service was registered"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		nativeCalls:     nativeCalls,
		eventsForwarded: eventsForwarded,
		eventsDropped:   eventsDropped,
	}, nil
}

// NativeCall records one outbound stack call.
func (m *Metrics) NativeCall(op string) {
	if m == nil {
		return
	}
	m.nativeCalls.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("op", op)))
}

// EventForwarded records one event delivered to the service.
func (m *Metrics) EventForwarded(eventType string) {
	if m == nil {
		return
	}
	m.eventsForwarded.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("type", eventType)))
}

// EventDropped records one event dropped for lack of a registered service.
func (m *Metrics) EventDropped(eventType string) {
	if m == nil {
		return
	}
	m.eventsDropped.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("type", eventType)))
}
