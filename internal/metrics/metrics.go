package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	astar "github.com/pdrpinto/gridastar"
)

const namespace = "gridastar"

// Metrics holds the search and HTTP collectors.
type Metrics struct {
	Steps              prometheus.Counter
	Searches           *prometheus.CounterVec
	PathLength         prometheus.Histogram
	ExpandedNodes      prometheus.Histogram
	httpDuration       *prometheus.HistogramVec
	responseStatusCode *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "The total number of search steps taken",
		}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Finished searches by outcome",
		}, []string{"outcome"}),
		PathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length_cells",
			Help:      "Number of positions on found paths",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 10),
		}),
		ExpandedNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expanded_nodes",
			Help:      "Nodes expanded per finished search",
			Buckets:   prometheus.ExponentialBuckets(4, 4, 8),
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"method", "path"}),
		responseStatusCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_status_code",
			Help:      "The status code of http response",
		}, []string{"status", "method", "path"}),
	}
	reg.MustRegister(m.Steps, m.Searches, m.PathLength, m.ExpandedNodes, m.httpDuration, m.responseStatusCode)
	return m
}

// ObserveSearch records a finished search.
func (m *Metrics) ObserveSearch(outcome astar.Outcome, res astar.Result) {
	m.Searches.WithLabelValues(outcome.String()).Inc()
	m.ExpandedNodes.Observe(float64(res.ExpandedNodes))
	if res.Found {
		m.PathLength.Observe(float64(len(res.Path)))
	}
}

// Middleware records duration and status per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		now := time.Now()

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpDuration.WithLabelValues(r.Method, path).Observe(time.Since(now).Seconds())
		m.responseStatusCode.WithLabelValues(strconv.Itoa(status), r.Method, path).Inc()
	})
}
