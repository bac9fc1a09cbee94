package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SearchFound       = "found"
	SearchUnreachable = "unreachable"
	SearchAborted     = "aborted"
	SearchCached      = "cached"
)

type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	searches *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "osmroute",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route pattern and status code.",
		}, []string{"method", "path", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "osmroute",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"method", "path"}),
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "osmroute",
			Name:      "route_searches_total",
			Help:      "Shortest path searches by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveSearch(outcome string) {
	m.searches.WithLabelValues(outcome).Inc()
}

// PromeHttpMiddleware catat jumlah request & latency per route pattern chi.
func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requests.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
			m.latency.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		}
		return http.HandlerFunc(fn)
	}
}
