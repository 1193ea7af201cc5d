package middlewares

import (
	"medicore-service/internal/app/config"
	"medicore-service/internal/pkg/constvars"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func (m *Middlewares) RequestLogger(appConfig config.App, log *logrus.Logger) func(next http.Handler) http.Handler {
	tz, err := time.LoadLocation(appConfig.Timezone)
	if err != nil {
		log.Warnf("Invalid time zone %q, falling back to UTC: %v", appConfig.Timezone, err)
		tz = time.UTC
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now().In(tz)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			entry := log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.RequestURI,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"remote_addr": r.RemoteAddr,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok && requestID != "" {
				entry = entry.WithField("request_id", requestID)
			}
			entry.Info("request completed")
		})
	}
}
