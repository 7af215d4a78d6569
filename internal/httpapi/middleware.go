package httpapi

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info("request", map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": chimw.GetReqID(r.Context()),
		})
	})
}
