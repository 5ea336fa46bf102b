package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/asciigraph/pkg/observability"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied IDs echoed into logs.
const maxRequestIDLength = 128

type ctxKey struct{}

// requestID adopts the client's X-Request-ID or assigns a new UUID, stores
// it in the context and echoes it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFrom returns the request ID stored in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// loggerFromRequest returns base annotated with the request ID.
func loggerFromRequest(r *http.Request, base *log.Logger) *log.Logger {
	if id := RequestIDFrom(r.Context()); id != "" {
		return base.With("request_id", id)
	}
	return base
}

// logRequests writes one log line per request and reports it to the HTTP
// hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)

		logger := loggerFromRequest(r, s.logger)
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request", fields...)
		} else {
			logger.Info("request", fields...)
		}
	})
}
