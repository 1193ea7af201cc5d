package middlewares

import (
	"context"
	"medicore-service/internal/pkg/constvars"
	"net/http"

	"github.com/google/uuid"
)

// RequestID propagates a caller-supplied X-Request-Id or mints one, so every
// log line of an orchestration run can be correlated.
func (m *Middlewares) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderXRequestID)
		fromClient := requestID != ""
		if !fromClient {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY, fromClient)

		w.Header().Set(constvars.HeaderXRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
