package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	sessions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goslim",
			Subsystem: "server",
			Name:      "sessions_total",
			Help:      "Total SLIM sessions served.",
		},
	)
	batches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goslim",
			Subsystem: "server",
			Name:      "batches_total",
			Help:      "Total instruction batches processed.",
		},
	)
	instructions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goslim",
			Subsystem: "server",
			Name:      "instructions_total",
			Help:      "Total instructions executed.",
		},
		[]string{"operation"},
	)
	exceptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goslim",
			Subsystem: "server",
			Name:      "instruction_exceptions_total",
			Help:      "Instructions that produced an exception result.",
		},
		[]string{"operation"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(sessions, batches, instructions, exceptions)
	})
}

func RecordSession() {
	RegisterMetrics()
	sessions.Inc()
}

func RecordBatch() {
	RegisterMetrics()
	batches.Inc()
}

func RecordInstruction(operation string, exception bool) {
	RegisterMetrics()
	instructions.WithLabelValues(operation).Inc()
	if exception {
		exceptions.WithLabelValues(operation).Inc()
	}
}
