package api

import (
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/cinemood/cinemood-server/internal/id"
	"github.com/cinemood/cinemood-server/internal/logger"
)

const headerRequestID = "X-Request-ID"

// Client-supplied request IDs are echoed only if they look sane.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// requestID assigns every request an ID, honoring a well-formed incoming
// X-Request-ID, and stores it on the context for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(headerRequestID)
		if !validRequestID.MatchString(reqID) {
			reqID = id.Request()
		}

		w.Header().Set(headerRequestID, reqID)
		ctx := logger.ContextWithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one line per request once the response is written.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		}
		switch {
		case status >= http.StatusInternalServerError:
			s.logger.ErrorContext(r.Context(), "request completed", args...)
		case status >= http.StatusBadRequest:
			s.logger.WarnContext(r.Context(), "request completed", args...)
		default:
			s.logger.DebugContext(r.Context(), "request completed", args...)
		}
	})
}
