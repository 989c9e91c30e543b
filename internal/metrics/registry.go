package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sawpanic/propscore/internal/scoring"
)

// Registry holds the prometheus collectors for scoring activity. Each
// Registry owns a private prometheus.Registry.
type Registry struct {
	reg *prometheus.Registry

	ListingsScored   prometheus.Counter
	ValidationErrors *prometheus.CounterVec
	SubScores        *prometheus.HistogramVec
	TotalScores      prometheus.Histogram
	ClampEvents      *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewRegistry creates and registers every collector.
func NewRegistry() *Registry {
	scoreBuckets := prometheus.LinearBuckets(0, 10, 11)

	r := &Registry{
		reg: prometheus.NewRegistry(),

		ListingsScored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "propscore_listings_scored_total",
				Help: "Total number of listings scored",
			},
		),

		ValidationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propscore_validation_errors_total",
				Help: "Listings or weight tables rejected at construction, by reason",
			},
			[]string{"reason"},
		),

		SubScores: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propscore_sub_score",
				Help:    "Distribution of clamped sub-scores by factor",
				Buckets: scoreBuckets,
			},
			[]string{"factor"},
		),

		TotalScores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "propscore_total_score",
				Help:    "Distribution of total value-for-money scores",
				Buckets: scoreBuckets,
			},
		),

		ClampEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propscore_clamp_events_total",
				Help: "Sub-scores that hit the [0,100] bounds, by factor",
			},
			[]string{"factor"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propscore_http_request_duration_seconds",
				Help:    "HTTP request duration by route and status",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"route", "status"},
		),
	}

	r.reg.MustRegister(
		r.ListingsScored,
		r.ValidationErrors,
		r.SubScores,
		r.TotalScores,
		r.ClampEvents,
		r.RequestDuration,
	)
	return r
}

// RecordBreakdown records one scored listing.
func (r *Registry) RecordBreakdown(b *scoring.Breakdown) {
	r.ListingsScored.Inc()
	r.TotalScores.Observe(b.Total)

	for _, f := range scoring.ActiveFactors {
		p := b.Parts[f]
		r.SubScores.WithLabelValues(string(f)).Observe(p.Score)
		if p.Clamped {
			r.ClampEvents.WithLabelValues(string(f)).Inc()
		}
	}
}

// RecordError classifies a construction failure.
func (r *Registry) RecordError(err error) {
	r.ValidationErrors.WithLabelValues(Reason(err)).Inc()
}

// Reason maps an error to a low-cardinality label.
func Reason(err error) string {
	switch {
	case errors.Is(err, scoring.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, scoring.ErrInvalidListing):
		return "invalid_listing"
	case errors.Is(err, scoring.ErrInvalidWeights):
		return "invalid_weights"
	default:
		return "other"
	}
}

// ObserveRequest records an HTTP request duration.
func (r *Registry) ObserveRequest(route string, status int, d time.Duration) {
	r.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler exposes the registry in the prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
