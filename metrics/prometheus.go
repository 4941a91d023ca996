package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports pipeline metrics through a Prometheus
// registerer.
type PrometheusCollector struct {
	transformations *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	dispatches      *prometheus.CounterVec
}

// NewPrometheusCollector creates a collector and registers its metrics with
// reg. A nil reg uses the default registerer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		transformations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transflow_transformations_total",
				Help: "Total number of transformation pipeline runs",
			},
			[]string{"request_type", "outcome", "error_kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "transflow_transformation_duration_seconds",
				Help: "Duration of transformation pipeline runs",
			},
			[]string{"request_type"},
		),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transflow_dispatches_total",
				Help: "Total number of transformer resolution attempts",
			},
			[]string{"identifier", "outcome"},
		),
	}

	for _, collector := range []prometheus.Collector{c.transformations, c.duration, c.dispatches} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordTransformation implements Collector.
func (c *PrometheusCollector) RecordTransformation(requestType string, duration time.Duration, success bool, errorKind string) {
	c.transformations.WithLabelValues(requestType, outcome(success), errorKind).Inc()
	c.duration.WithLabelValues(requestType).Observe(duration.Seconds())
}

// RecordDispatch implements Collector.
func (c *PrometheusCollector) RecordDispatch(identifier string, candidates int, success bool) {
	c.dispatches.WithLabelValues(identifier, outcome(success)).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
