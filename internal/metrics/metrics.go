// Package metrics exposes Prometheus counters for the relay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectionsActive tracks currently registered websocket connections.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_connections_active",
		Help: "Number of websocket connections currently registered.",
	})

	// RoomsActive tracks rooms currently held in the store.
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_rooms_active",
		Help: "Number of rooms currently active.",
	})

	// MessagesTotal counts inbound messages by type.
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_messages_total",
		Help: "Total inbound messages processed, by message type.",
	}, []string{"type"})

	// SendsDropped counts outbound messages dropped on full send queues.
	SendsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_sends_dropped_total",
		Help: "Total outbound messages dropped because a send queue was full.",
	})

	// ConnectionsReaped counts connections closed by the liveness sweep.
	ConnectionsReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_connections_reaped_total",
		Help: "Total connections reaped after missing liveness probes.",
	})
)

// Handler exposes Prometheus metrics over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}
