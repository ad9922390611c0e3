// Package metrics exposes Prometheus counters for the activity API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Mutation operations.
const (
	OpSignup     = "signup"
	OpUnregister = "unregister"
)

// Recorder counts roster reads and mutation outcomes.
type Recorder struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	fetches   prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "mutations_total",
			Help:      "Sign-up and unregister requests by outcome.",
		}, []string{"op", "outcome"}),
		fetches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "activity_fetches_total",
			Help:      "Full activity collection reads.",
		}),
	}
}

// Mutation records one mutation with outcome such as "ok" or the rejection
// status text.
func (r *Recorder) Mutation(op, outcome string) {
	r.mutations.WithLabelValues(op, outcome).Inc()
}

// Fetch records one collection read.
func (r *Recorder) Fetch() {
	r.fetches.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
