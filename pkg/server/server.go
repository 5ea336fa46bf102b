// Package server exposes chart rendering over HTTP.
//
// Routes:
//
//	POST /v1/render   {"dataset": {...}, "options": {...}} → text/plain chart
//	GET  /healthz     liveness probe
//	GET  /version     build information as JSON
//
// The dataset object uses the JSON export schema of package io and the
// options object is [pipeline.Options]. Errors are returned as
// {"code": "...", "message": "..."}: chart errors with 422, malformed
// requests with 400.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/asciigraph/pkg/buildinfo"
	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/errors"
	asciiio "github.com/matzehuels/asciigraph/pkg/io"
	"github.com/matzehuels/asciigraph/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds the size of a render request.
const DefaultMaxBodyBytes = 4 << 20

// shutdownTimeout is how long in-flight requests get after the context ends.
const shutdownTimeout = 10 * time.Second

// Server renders posted datasets through a pipeline.Runner.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	router       chi.Router
	MaxBodyBytes int64
}

// New builds a server. A nil logger means the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:       runner,
		logger:       logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Post("/v1/render", s.handleRender)
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// renderRequest is the body of POST /v1/render.
type renderRequest struct {
	Dataset chart.Dataset    `json:"dataset"`
	Options pipeline.Options `json:"options"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := asciiio.ValidateDataset(req.Dataset); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := req.Options
	opts.Logger = loggerFromRequest(r, s.logger)

	res, err := s.runner.RenderDataset(r.Context(), req.Dataset, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.IsChartError(err):
		return http.StatusUnprocessableEntity
	case errors.GetCode(err) == errors.ErrCodeInvalidInput,
		errors.GetCode(err) == errors.ErrCodeInvalidFormat,
		errors.GetCode(err) == errors.ErrCodeInvalidLabel,
		errors.GetCode(err) == errors.ErrCodeInvalidValue:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
