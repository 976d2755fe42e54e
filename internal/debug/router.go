// Package debug serves read-only diagnostics over HTTP: health, Prometheus
// metrics, the latest world summary (/debug/world) and optionally pprof. Nothing here
// touches the world directly; the frame loop publishes a digest that
// handlers read from another goroutine.
package debug

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/driftwood2d/driftwood/internal/world"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Summaries holds the most recent world digest. Publish is called by the
// cleanup system on the frame goroutine; Latest is safe from any goroutine.
type Summaries struct {
	latest atomic.Pointer[world.Summary]
}

func (s *Summaries) Publish(sum world.Summary) { s.latest.Store(&sum) }

// Latest returns nil until the first frame has been published.
func (s *Summaries) Latest() *world.Summary { return s.latest.Load() }

type RouterConfig struct {
	Registry  *prometheus.Registry
	Summaries *Summaries
	Pprof     bool
	Log       *zap.Logger
}

// NewRouter builds the diagnostics routes. It has no side effects so tests
// can drive it with httptest.
func NewRouter(cfg RouterConfig) *chi.Mux {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/debug/world", func(w http.ResponseWriter, _ *http.Request) {
		var sum *world.Summary
		if cfg.Summaries != nil {
			sum = cfg.Summaries.Latest()
		}
		if sum == nil {
			http.Error(w, "no frame yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, sum)
	})

	if cfg.Pprof {
		r.Mount("/debug", middleware.Profiler())
	}
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("debug request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()))
		})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
