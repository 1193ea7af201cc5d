package middlewares

import (
	"context"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyAuth guards administrative endpoints such as manual bed release. The
// configured value is a bcrypt hash; the plaintext key never lives in config.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(m.InternalConfig.App.AdminAPIKeyHash), []byte(apiKey)); err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH_KEY, true)

		m.Log.Info("API key authentication successful",
			zap.String("ip", r.RemoteAddr),
			zap.String("endpoint", r.URL.Path),
			zap.String("method", r.Method))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
