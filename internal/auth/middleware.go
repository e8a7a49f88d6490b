package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

// ClaimsFromContext returns the verified claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// RequireAuth gates staff-facing operations. Verification happens
// before the wrapped handler runs, so no state mutation is reachable
// with a bad credential.
func RequireAuth(service *Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := ""
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}

			claims, err := service.VerifyToken(token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			if !Allow(claims, r.Method+" "+r.URL.Path) {
				logger.Warn("action denied by policy",
					zap.String("subject", claims.Subject),
					zap.String("action", r.Method+" "+r.URL.Path),
				)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}
