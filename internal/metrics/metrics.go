package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionsTotal counts accepted TCP connections.
	ConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathecho_connections_total",
		Help: "Total TCP connections accepted.",
	})

	// ResponsesTotal counts responses by kind (root vs echo).
	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathecho_responses_total",
		Help: "Total responses written, by response kind.",
	}, []string{"kind"})

	// AcceptErrors counts failed accept calls that did not stop the loop.
	AcceptErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathecho_accept_errors_total",
		Help: "Accept failures survived by the listener.",
	})

	// ReadErrors counts connections closed without a parsable request.
	ReadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathecho_read_errors_total",
		Help: "Connections closed on an empty or failed read.",
	})

	// PathTruncations counts request lines with at least one over-length
	// token cut to fit its buffer.
	PathTruncations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathecho_path_truncations_total",
		Help: "Request lines with an over-length token truncated.",
	})

	// RequestBytes tracks the distribution of bytes read per connection.
	RequestBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathecho_request_bytes",
		Help:    "Bytes received in the single read per connection.",
		Buckets: []float64{16, 64, 128, 256, 512, 1023},
	})
)
