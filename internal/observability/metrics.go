package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IsochroneCollector bundles the Prometheus metrics exposed by
// fastreach-server and provides a ready /metrics handler.
type IsochroneCollector struct {
	gatherer prometheus.Gatherer

	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec

	GraphNodes      prometheus.Gauge
	DijkstraVisited prometheus.Histogram
	CoverageRemoved prometheus.Histogram
}

// NewIsochroneCollector registers the collector's metrics against reg,
// defaulting to the global Prometheus registry when reg is nil. Using the
// already-registered collector on a retry (rather than failing) lets tests
// construct several collectors against prometheus.DefaultRegisterer without
// tripping over each other.
func NewIsochroneCollector(reg prometheus.Registerer) (*IsochroneCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fastreach_requests_total",
		Help: "Total number of handled isochrone requests, labeled by HTTP status code.",
	}, []string{"code"})
	requests, err := registerCounterVec(reg, requests, "fastreach_requests_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fastreach_request_duration_seconds",
		Help:    "Isochrone request latency in seconds, from receipt of the request to the reply; replies rejected before computation are recorded as 0.",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"code"})
	duration, err = registerHistogramVec(reg, duration, "fastreach_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	graphNodes, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fastreach_graph_nodes",
		Help: "Number of stations in the loaded graph.",
	}), "fastreach_graph_nodes")
	if err != nil {
		return nil, err
	}

	visited, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fastreach_dijkstra_visited_total",
		Help:    "Number of stations reached by a single isochrone expansion, before coverage reduction.",
		Buckets: prometheus.ExponentialBuckets(4, 2, 12),
	}), "fastreach_dijkstra_visited_total")
	if err != nil {
		return nil, err
	}

	removed, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fastreach_coverage_reduced_total",
		Help:    "Number of stations removed by coverage reduction (Stage A + Stage B combined) per request.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}), "fastreach_coverage_reduced_total")
	if err != nil {
		return nil, err
	}

	return &IsochroneCollector{
		gatherer:        gatherer,
		Requests:        requests,
		Duration:        duration,
		GraphNodes:      graphNodes,
		DijkstraVisited: visited,
		CoverageRemoved: removed,
	}, nil
}

// RecordRequest observes one completed request's status code and latency.
func (c *IsochroneCollector) RecordRequest(code string, seconds float64) {
	if c == nil {
		return
	}
	if c.Requests != nil {
		c.Requests.WithLabelValues(code).Inc()
	}
	if c.Duration != nil {
		c.Duration.WithLabelValues(code).Observe(seconds)
	}
}

// RecordPipeline observes how many stations a single request's expansion
// visited and how many coverage reduction then removed.
func (c *IsochroneCollector) RecordPipeline(visited, removed int) {
	if c == nil {
		return
	}
	if c.DijkstraVisited != nil {
		c.DijkstraVisited.Observe(float64(visited))
	}
	if c.CoverageRemoved != nil {
		c.CoverageRemoved.Observe(float64(removed))
	}
}

// SetGraphNodes records the node count of the graph the server is serving.
// It is set once at startup, after the graph finishes parsing.
func (c *IsochroneCollector) SetGraphNodes(n int) {
	if c == nil || c.GraphNodes == nil {
		return
	}
	c.GraphNodes.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *IsochroneCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
