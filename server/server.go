// Package server exposes transaction detail views over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
	"github.com/smartcontractkit/safe-txdetails/view"
	"github.com/smartcontractkit/safe-txdetails/view/renderer"
)

const (
	defaultRequestTimeout = 60 * time.Second
	shutdownTimeout       = 30 * time.Second
)

// Server serves rendered transaction views.
type Server struct {
	svc       *view.Service
	renderers *renderer.Registry
	decoders  *decoder.Registry
	lggr      logger.Logger
	validate  *validator.Validate
	metrics   *metrics
	registry  *prometheus.Registry
	timeout   time.Duration
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(lggr logger.Logger) Option {
	return func(s *Server) {
		s.lggr = lggr
	}
}

// WithRenderers replaces the default renderer registry.
func WithRenderers(r *renderer.Registry) Option {
	return func(s *Server) {
		s.renderers = r
	}
}

// WithDecoders sets the table listed by the decoders endpoint.
func WithDecoders(r *decoder.Registry) Option {
	return func(s *Server) {
		s.decoders = r
	}
}

// WithRequestTimeout bounds the handling of every request.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.timeout = timeout
	}
}

// New builds a Server around svc. The renderer registry defaults to renderer.DefaultRegistry.
func New(svc *view.Service, opts ...Option) (*Server, error) {
	s := &Server{
		svc:      svc,
		decoders: decoder.DefaultRegistry(),
		lggr:     logger.Nop(),
		validate: validator.New(),
		registry: prometheus.NewRegistry(),
		timeout:  defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.renderers == nil {
		r, err := renderer.DefaultRegistry()
		if err != nil {
			return nil, err
		}
		s.renderers = r
	}

	m, err := newMetrics(s.registry)
	if err != nil {
		return nil, err
	}
	s.metrics = m
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(chimiddleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/decoders", s.handleDecoders)
		r.Get("/formats", s.handleFormats)
		r.Get("/chains/{chainId}/transactions/{txId}/view", s.handleView)
	})

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.lggr.Infow("HTTP server listening", "address", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.lggr.Infow("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}
