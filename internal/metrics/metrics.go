package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scriptwriter_generations_total",
		Help: "Scripts produced, by the tier that produced them.",
	}, []string{"tier"})

	BackendFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scriptwriter_backend_failures_total",
		Help: "Failed backend attempts that moved generation to the next tier.",
	}, []string{"backend"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scriptwriter_generation_duration_seconds",
		Help:    "Time to produce a script across all tiers.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	RenderFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scriptwriter_render_fallbacks_total",
		Help: "PDF exports that degraded to the simplified renderer.",
	})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scriptwriter_exports_total",
		Help: "Document exports, by format.",
	}, []string{"format"})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scriptwriter_sessions_active",
		Help: "Sessions currently held in memory.",
	})
)
