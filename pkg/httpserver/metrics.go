package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// ActiveStreams tracks open quote-stream connections.
	ActiveStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "order_economics_active_quote_streams",
		Help: "Number of open quote-stream websocket connections",
	})

	// StreamMessagesTotal tracks quote-stream messages by outcome.
	StreamMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_economics_quote_stream_messages_total",
			Help: "Total number of quote-stream messages answered, by outcome",
		},
		[]string{"outcome"},
	)
)
