// Package server exposes the drawing pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz               liveness and build info
//	GET  /v1/drawing            drawing document for the query parameters
//	GET  /v1/drawing.{format}   one rendered artifact (svg, png, pdf, json, hpgl)
//	POST /v1/drawing            JSON options in, run summary and artifacts out
//
// Query parameters and JSON bodies start from the stock drawing; only the
// fields supplied override it. Errors are JSON objects {"code", "message",
// "request_id"} with a status derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/slopes/pkg/pipeline"
)

// Default request limits.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRows    = 500
	DefaultMaxSamples = 5000
	DefaultMaxPixels  = 16_000_000
)

// Config configures the HTTP server.
type Config struct {
	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string

	// Timeout bounds each request, generation included.
	Timeout time.Duration

	// MaxRows and MaxSamples cap the drawing size a request may ask for.
	MaxRows    int
	MaxSamples int

	// MaxPixels caps the size of a PNG render, scale included.
	MaxPixels int

	// Workers is passed to the generator for every request.
	Workers int

	Logger *log.Logger
}

func (c *Config) setDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRows <= 0 {
		c.MaxRows = DefaultMaxRows
	}
	if c.MaxSamples <= 0 {
		c.MaxSamples = DefaultMaxSamples
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = DefaultMaxPixels
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// Server serves drawings produced by a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a server around runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	cfg.setDefaults()
	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
