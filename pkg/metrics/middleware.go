package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	RequestsCollectorName = "chi_requests_total"
	LatencyCollectorName  = "chi_request_duration_milliseconds"
)

// DefaultLatencyBuckets in milliseconds. A calculation is pure arithmetic, so anything
// past a few milliseconds is time spent rendering or on the wire.
var DefaultLatencyBuckets = []float64{1, 5, 25, 100, 500, 1000}

// Middleware is a handler that exposes prometheus metrics for the number of requests
// and the latency, partitioned by status code, method, and route pattern.
type Middleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMiddleware returns a new prometheus middleware for the provided service name.
// Empty buckets fall back to DefaultLatencyBuckets.
func NewMiddleware(name string, buckets []float64) *Middleware {
	if len(buckets) == 0 {
		buckets = DefaultLatencyBuckets
	}

	var m Middleware
	m.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        RequestsCollectorName,
			Help:        "Number of HTTP requests partitioned by status code, method and HTTP path.",
			ConstLabels: prometheus.Labels{"service": name},
		}, []string{"code", "method", "path"})

	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        LatencyCollectorName,
		Help:        "Time spent on the request partitioned by status code, method and HTTP path.",
		ConstLabels: prometheus.Labels{"service": name},
		Buckets:     buckets,
	}, []string{"code", "method", "path"})

	return &m
}

// Handler returns a handler for the middleware pattern.
func (m Middleware) Handler(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// the route pattern keeps the label cardinality bounded
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rp := rctx.RoutePattern()
			since := float64(time.Since(start).Milliseconds())
			m.requests.WithLabelValues(strconv.Itoa(ww.Status()), r.Method, rp).Inc()
			m.latency.WithLabelValues(strconv.Itoa(ww.Status()), r.Method, rp).Observe(since)
		}
	}
	return http.HandlerFunc(fn)
}

// MustRegister registers the collectors to reg. Servers pass prometheus.DefaultRegisterer;
// tests pass a fresh registry so several routers can be built in one process.
func (m Middleware) MustRegister(reg prometheus.Registerer) {
	if m.requests == nil || m.latency == nil {
		panic("collectors must be set")
	}
	reg.MustRegister(m.requests, m.latency)
}
