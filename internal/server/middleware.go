package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/observability"
)

// Response headers set by the server.
const (
	RequestIDHeader   = "X-Request-ID"
	RunIDHeader       = "X-Run-ID"
	DrawingHashHeader = "X-Drawing-Hash"
	CacheHeader       = "X-Cache"
)

const maxRequestIDLen = 64

// requestID propagates a client supplied X-Request-ID or assigns a fresh
// UUID. The ID is stored under chi's key so middleware.GetReqID finds it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports each request to the HTTP hooks and logs it.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, d)
		s.logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d,
			"remote", r.RemoteAddr,
			"request_id", middleware.GetReqID(ctx))
	})
}

// recoverer turns a panic into a 500 JSON error. http.ErrAbortHandler is
// re-raised so the server can drop the connection.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.Error("panic", "recovered", rec, "stack", string(debug.Stack()))
			err := errors.New(errors.ErrCodeInternal, "panic: %v", rec)
			renderError(w, r, s.logger, err)
		}()
		next.ServeHTTP(w, r)
	})
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func methodNotAllowed(method string) error {
	return &statusError{
		status: http.StatusMethodNotAllowed,
		code:   "METHOD_NOT_ALLOWED",
		msg:    fmt.Sprintf("method %s not allowed", method),
	}
}
