package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskflow-project/backend/logging"
	"taskflow-project/backend/utils"
)

type contextKey string

const claimsContextKey contextKey = "sessionClaims"

// JWTAuthMiddleware validates the bearer token and puts the session claims
// into the request context. Handlers read the acting user from the context
// only; there is no ambient session state.
func JWTAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// ClaimsFromContext returns the session claims placed by JWTAuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*utils.Claims)
	return claims, ok
}

// RequireRole wraps a handler and rejects sessions whose role is not allowed.
func RequireRole(next http.HandlerFunc, allowedRoles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "Missing session", http.StatusUnauthorized)
			return
		}
		for _, role := range allowedRoles {
			if claims.Role == role {
				next(w, r)
				return
			}
		}
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
	}
}
