package skill

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandol-bot/sandol/internal/version"
)

// Request outcomes recorded in sandol_skill_requests_total.
const (
	outcomeOK       = "ok"
	outcomeFallback = "fallback"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
}

// NewMetrics registers the skill collectors plus Go runtime and process
// collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	f.NewGauge(prometheus.GaugeOpts{
		Name:        "sandol_build_info",
		Help:        "Build metadata; always 1",
		ConstLabels: version.Labels(),
	}).Set(1)

	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sandol_skill_requests_total",
				Help: "Skill requests handled, by skill and outcome",
			},
			[]string{"skill", "outcome"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sandol_skill_duration_seconds",
				Help:    "Time spent answering a skill request",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"skill"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sandol_skill_fallbacks_total",
				Help: "Fallback responses sent, by skill and reason",
			},
			[]string{"skill", "reason"},
		),
	}
}

func (m *Metrics) observe(skill, outcome string, d time.Duration) {
	m.requests.WithLabelValues(skill, outcome).Inc()
	m.duration.WithLabelValues(skill).Observe(d.Seconds())
}

func (m *Metrics) fallback(skill, reason string) {
	m.fallbacks.WithLabelValues(skill, reason).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
