package middlewares

import (
	"context"
	"fmt"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// BearerAuth validates the clinician token issued by the identity service and
// places the subject into the request context.
func (m *Middlewares) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalid(nil))
			return
		}

		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(m.InternalConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalid(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_CLINICIAN_ID_KEY, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
