package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "jiggler"
	subsystem = "engine"
)

// Cycle triggers.
const (
	TriggerScheduled = "scheduled"
	TriggerForced    = "forced"
)

// Cycle results.
const (
	ResultMoved      = "moved"
	ResultUserActive = "user_active"
	ResultBusy       = "busy"
	ResultFailed     = "failed"
)

// Metrics holds the engine collectors. A nil *Metrics records nothing.
type Metrics struct {
	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	interval      prometheus.Gauge
	running       prometheus.Gauge
}

// NewMetrics registers the engine collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		cycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycles_total",
				Help:      "Jiggle cycles by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		cycleDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycle_duration_seconds",
				Help:      "Time spent performing a pointer round trip",
				Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		interval: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "interval_seconds",
				Help:      "Currently armed wait before the next scheduled cycle",
			},
		),
		running: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "running",
				Help:      "1 while the scheduler is running, 0 otherwise",
			},
		),
	}
}

func (m *Metrics) observeCycle(trigger, result string) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(trigger, result).Inc()
}

func (m *Metrics) observeDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.cycleDuration.Observe(d.Seconds())
}

func (m *Metrics) setInterval(d time.Duration) {
	if m == nil {
		return
	}
	m.interval.Set(d.Seconds())
}

func (m *Metrics) setRunning(running bool) {
	if m == nil {
		return
	}
	if running {
		m.running.Set(1)
		return
	}
	m.running.Set(0)
	m.interval.Set(0)
}
