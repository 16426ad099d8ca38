package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

const namespace = "zeitgeist"

// Metrics exposes Prometheus collectors for fetch cycles, scores and
// interactions. It satisfies zeitgeist.FetchObserver and
// zeitgeist.ServiceObserver. A nil *Metrics is a no-op.
type Metrics struct {
	gatherer prometheus.Gatherer

	fetchDuration *prometheus.HistogramVec
	fetchTotal    *prometheus.CounterVec
	baseScore     prometheus.Gauge
	vibeScore     prometheus.Gauge
	mode          *prometheus.GaugeVec
	interactions  *prometheus.CounterVec
}

// MustNewMetrics registers the collectors on reg and panics on a
// registration error. Tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		gatherer: reg,
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "fetch_duration_seconds",
				Help:      "Time spent fetching one source, including timeouts.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 6, 10},
			},
			[]string{"source", "state"},
		),
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "fetch_total",
				Help:      "Source fetches by outcome (ok, fallback, failed).",
			},
			[]string{"source", "state"},
		),
		baseScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "base_vibe_score",
			Help:      "Base vibe score of the cached bundle.",
		}),
		vibeScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vibe_score",
			Help:      "Last served vibe score after interaction influence.",
		}),
		mode: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "mode",
				Help:      "1 for the interaction mode of the last served entity, 0 otherwise.",
			},
			[]string{"mode"},
		),
		interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "interactions_total",
				Help:      "Recorded user interactions by kind.",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(
		m.fetchDuration,
		m.fetchTotal,
		m.baseScore,
		m.vibeScore,
		m.mode,
		m.interactions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFetch records one source outcome of a fetch cycle.
func (m *Metrics) ObserveFetch(source zeitgeist.SourceID, state zeitgeist.SourceState, took time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(string(source), string(state)).Observe(took.Seconds())
	m.fetchTotal.WithLabelValues(string(source), string(state)).Inc()
}

// ObserveScore records the scores and mode of a served entity.
func (m *Metrics) ObserveScore(base, vibe int, mode zeitgeist.Mode) {
	if m == nil {
		return
	}
	m.baseScore.Set(float64(base))
	m.vibeScore.Set(float64(vibe))
	for _, md := range []zeitgeist.Mode{zeitgeist.ModeCalm, zeitgeist.ModeVolatile, zeitgeist.ModeChaos} {
		v := 0.0
		if md == mode {
			v = 1
		}
		m.mode.WithLabelValues(string(md)).Set(v)
	}
}

// ObserveInteraction counts one recorded interaction.
func (m *Metrics) ObserveInteraction(kind zeitgeist.InteractionKind) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(string(kind)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
