package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewCounter registers the service-wide counter on the default registry.
// Call it once per process.
func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filestorage",
			Name:      "general_counters",
			Help:      "Service counters keyed by result.",
		},
		[]string{"result"})
}
