// Package api serves diagram layout and rendering over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness and build info
//	POST /v1/layout                layout document (JSON)
//	POST /v1/render?format=svg     rendered diagram (svg, png, pdf or json)
//
// Request bodies carry exactly one of "sizes" (a 3 or 7 element tuple),
// "subsets" (a map from membership key to size) or "sets" (element lists),
// plus optional "layout", "labels" and "style" objects that override the
// server defaults field by field.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venn/pkg/config"
	"github.com/matzehuels/venn/pkg/pipeline"
)

// Server is the HTTP API. All requests share one pipeline.Runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults config.Config
	handler  http.Handler
}

// New creates a server. defaults supplies the layout, label and style
// settings a request does not override, and the listen configuration.
func New(runner *pipeline.Runner, logger *log.Logger, defaults config.Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, defaults: defaults}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on defaults.Server.Addr until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.defaults.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
