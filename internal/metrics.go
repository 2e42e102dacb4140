package internal

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	registry        *prometheus.Registry
	resizeRequests  prometheus.Counter
	convertRequests prometheus.Counter
	failures        *prometheus.CounterVec
	resizeDuration  prometheus.Histogram
	outputSize      prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resizeRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resize_requests_total",
			Help: "Total number of resize requests received.",
		}),
		convertRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "convert_requests_total",
			Help: "Total number of format conversion requests received.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resize_failures_total",
			Help: "Total number of failed resize or convert operations.",
		}, []string{"reason"}),
		resizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resize_duration_milliseconds",
			Help:    "The duration of decode, reframe and encode in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16), // 1ms to ~33s
		}),
		outputSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "output_size_bytes",
			Help:    "Size of the encoded output image.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10), // 1KiB to 256MiB
		}),
	}
	m.registry.MustRegister(m.resizeRequests, m.convertRequests, m.failures, m.resizeDuration, m.outputSize)
	return m
}

func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile dumps the metrics in the node_exporter textfile collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) failed(err error) {
	m.failures.WithLabelValues(ErrorReason(err)).Inc()
}
