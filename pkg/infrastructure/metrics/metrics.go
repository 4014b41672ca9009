package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bucketlist_requests_total",
		Help: "Total API requests by route and status class",
	}, []string{"route", "code"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bucketlist_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	TogglesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bucketlist_completion_toggles_total",
		Help: "Completion writes by action (set/remove) and result (ok/error)",
	}, []string{"action", "result"})
	SnapshotsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bucketlist_snapshots_total",
		Help: "Applied full-state snapshots by stream (catalog/completions)",
	}, []string{"stream"})
	VisibleActivities = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bucketlist_visible_activities",
		Help:    "Number of activities returned by a filter evaluation",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})
	SeededActivitiesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bucketlist_seeded_activities_total",
		Help: "Catalog documents created by the seeder",
	})
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestDurationMs,
			TogglesTotal,
			SnapshotsTotal,
			VisibleActivities,
			SeededActivitiesTotal,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
