package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/HerbHall/oscars/internal/version"
)

// RouteRegistrar is implemented by API handlers that mount their own routes.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Options tunes the HTTP server. Zero timeouts fall back to the defaults
// used by New; a zero RateLimit disables rate limiting.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Compress     bool
	RateLimit    float64
	RateBurst    int
}

// Server is the main Oscars API server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	gatherer   prometheus.Gatherer
}

// New creates a new Server instance. Metrics are exposed at /metrics when
// gatherer is non-nil.
func New(addr string, opts Options, logger *zap.Logger, gatherer prometheus.Gatherer, registrars ...RouteRegistrar) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:   logger,
		mux:      mux,
		gatherer: gatherer,
	}

	s.registerCoreRoutes()
	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.buildHandler(opts),
		ReadTimeout:  orDefault(opts.ReadTimeout, 15*time.Second),
		WriteTimeout: orDefault(opts.WriteTimeout, 15*time.Second),
		IdleTimeout:  orDefault(opts.IdleTimeout, 60*time.Second),
	}

	return s
}

// buildHandler wraps the mux in the middleware chain, outermost first:
// request id, access log, rate limit, compression.
func (s *Server) buildHandler(opts Options) http.Handler {
	var h http.Handler = s.mux
	if opts.Compress {
		h = gzhttp.GzipHandler(h)
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		h = rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), burst), h)
	}
	h = accessLog(s.logger, h)
	return requestID(h)
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	if s.gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Oscars-Version", version.Short())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "oscars",
		"version": version.Map(),
	})
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
