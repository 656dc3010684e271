package hashcrack

import (
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomePartial  = "partial"
)

type Metrics struct {
	cracks   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cracks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainbow",
			Name:      "cracks_total",
			Help:      "Crack queries by salting mode and outcome.",
		}, []string{"mode", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rainbow",
			Name:      "crack_duration_seconds",
			Help:      "Time spent answering a crack query.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"mode"}),
	}
	reg.MustRegister(m.cracks, m.duration)
	return m
}

func (m *Metrics) observe(mode, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.cracks.WithLabelValues(mode, outcome).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}
