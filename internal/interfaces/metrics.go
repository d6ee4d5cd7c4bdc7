package interfaces

import "github.com/prometheus/client_golang/prometheus"

// Metrics records named Prometheus collectors. Recording against a name
// that was never registered is a no-op.
type Metrics interface {
	GetRegistry() *prometheus.Registry
	IncCounter(name string)
	IncCounterVec(name string, labels ...string)
	ObserveHistogram(name string, value float64)
	ObserveHistogramVec(name string, value float64, labels ...string)
	SetCurrentTimeGauge(name string)
	// RegisterCounter registers a new counter metric.
	RegisterCounter(name, help string)
	// RegisterCounterVec registers a new counter metric with labels.
	RegisterCounterVec(name, help string, labels []string)
	// RegisterHistogram registers a new histogram metric.
	RegisterHistogram(name, help string, buckets []float64)
	// RegisterHistogramVec registers a new histogram metric with labels.
	RegisterHistogramVec(name, help string, buckets []float64, labels []string)
	// RegisterGauge registers a new gauge metric.
	RegisterGauge(name, help string)
}
