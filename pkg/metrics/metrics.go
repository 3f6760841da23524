package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Global collectors, registered on the default registry through promauto.

var (
	// HttpRequestsTotal counts API requests by method, path and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neuronet_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures API response time.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neuronet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"method", "path"},
	)

	// GraphNodes, GraphEdges and GraphMemoryBytes describe the installed graph.
	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "neuronet_graph_nodes",
		Help: "Number of nodes in the installed graph",
	})
	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "neuronet_graph_edges",
		Help: "Number of edges in the installed graph",
	})
	GraphMemoryBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "neuronet_graph_memory_bytes",
		Help: "Resident size of the installed graph's CSR arrays",
	})

	// LoadsTotal counts load attempts by outcome: "ok", "failed" or "superseded".
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neuronet_graph_loads_total",
			Help: "Total number of graph loads by outcome",
		},
		[]string{"outcome"},
	)

	// LoadDuration covers parsing plus CSR construction.
	LoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "neuronet_graph_load_duration_seconds",
		Help:    "Duration of successful graph loads in seconds",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	// QueryDuration measures engine queries by operation.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neuronet_query_duration_seconds",
			Help:    "Duration of graph queries in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"op"},
	)
)
