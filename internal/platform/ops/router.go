// Package ops serves the operational endpoints: liveness, readiness and metrics.
package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"calibra/internal/platform/metrics"
	"calibra/pkg/requestcontext"
)

// Check reports whether a dependency is ready.
type Check func(ctx context.Context) error

type Router struct {
	checks   map[string]Check
	gatherer prometheus.Gatherer
	metrics  *metrics.Metrics
	timeout  time.Duration
}

type Option func(*Router)

func WithCheck(name string, check Check) Option {
	return func(r *Router) {
		r.checks[name] = check
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

func WithTimeout(d time.Duration) Option {
	return func(r *Router) {
		r.timeout = d
	}
}

// NewRouter builds the ops handler. gatherer backs /metrics.
func NewRouter(gatherer prometheus.Gatherer, opts ...Option) http.Handler {
	r := &Router{
		checks:   make(map[string]Check),
		gatherer: gatherer,
		timeout:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestScope)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", r.ready)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return router
}

// requestScope pins the request time and copies chi's request id into
// requestcontext so checks log with the same values as the service layer.
func requestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = requestcontext.WithRequestID(ctx, reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type readiness struct {
	Status string            `json:"status"`
	Failed map[string]string `json:"failed,omitempty"`
}

func (r *Router) ready(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), r.timeout)
	defer cancel()

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	body := readiness{Status: "ready"}
	for _, name := range names {
		err := r.checks[name](ctx)
		if r.metrics != nil {
			r.metrics.ObserveDependency(name, err == nil)
		}
		if err != nil {
			if body.Failed == nil {
				body.Failed = make(map[string]string)
			}
			body.Failed[name] = err.Error()
		}
	}

	status := http.StatusOK
	if len(body.Failed) > 0 {
		body.Status = "not ready"
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
