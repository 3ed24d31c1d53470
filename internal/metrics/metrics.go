// Package metrics exposes Prometheus counters and gauges for the
// connection lifecycle, handshake outcomes, and message throughput of the
// protocol engine.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ConnectionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "esphome_api_connections_accepted_total",
	Help: "counter of TCP connections accepted by the protocol engine",
})

var ConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "esphome_api_connections_open",
	Help: "gauge of connections currently past the handshake and serving traffic",
})

var HandshakesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "esphome_api_handshakes_total",
	Help: "counter of connection negotiations (mode detection plus the Noise handshake on encrypted connections), by outcome",
}, []string{"outcome"})

var MessagesRead = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "esphome_api_messages_read_total",
	Help: "counter of messages decoded off the wire, by message type",
}, []string{"message_type"})

var MessagesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "esphome_api_messages_written_total",
	Help: "counter of messages encoded onto the wire, by message type",
}, []string{"message_type"})

var OutboundQueueHighWater = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "esphome_api_outbound_queue_high_water",
	Help: "largest observed depth of any connection's outbound queue",
})

var queueHighWater int64

// ObserveQueueDepth updates OutboundQueueHighWater if depth exceeds the
// current high-water mark, tracked separately since Prometheus gauges have
// no compare-and-set of their own.
func ObserveQueueDepth(depth int) {
	for {
		cur := atomic.LoadInt64(&queueHighWater)
		if int64(depth) <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&queueHighWater, cur, int64(depth)) {
			OutboundQueueHighWater.Set(float64(depth))
			return
		}
	}
}
