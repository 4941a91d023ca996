// Package metrics collects transformation pipeline metrics.
package metrics

import "time"

// Collector records pipeline and dispatch metrics.
type Collector interface {
	// RecordTransformation records one pipeline run.
	RecordTransformation(requestType string, duration time.Duration, success bool, errorKind string)

	// RecordDispatch records one transformer resolution attempt.
	RecordDispatch(identifier string, candidates int, success bool)
}

// NoOpCollector is a no-op implementation of Collector.
type NoOpCollector struct{}

// RecordTransformation does nothing.
func (NoOpCollector) RecordTransformation(requestType string, duration time.Duration, success bool, errorKind string) {
}

// RecordDispatch does nothing.
func (NoOpCollector) RecordDispatch(identifier string, candidates int, success bool) {}
