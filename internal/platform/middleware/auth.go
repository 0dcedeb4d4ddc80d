package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"curator/internal/domain"
	"curator/pkg/requestcontext"
)

// TokenParser validates a bearer token and recovers the identity it carries.
type TokenParser interface {
	Parse(tokenString string) (domain.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// authenticated actor to the request context for the services downstream.
func RequireAuth(parser TokenParser, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.Printf("unauthorized: missing bearer token request_id=%s", requestcontext.RequestID(r.Context()))
				unauthorized(w, "missing or invalid Authorization header")
				return
			}

			identity, err := parser.Parse(token)
			if err != nil {
				logger.Printf("unauthorized: %v request_id=%s", err, requestcontext.RequestID(r.Context()))
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := requestcontext.WithActorID(r.Context(), identity.UserID)
			ctx = requestcontext.WithActorRole(ctx, string(identity.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a subtree behind a minimum role. It assumes RequireAuth
// already ran; a request with no role in context is rejected.
func RequireRole(min domain.Role, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := domain.Role(requestcontext.ActorRole(r.Context()))
			if !role.Allows(min) {
				logger.Printf("forbidden: role=%q needs=%q request_id=%s", role, min, requestcontext.RequestID(r.Context()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "insufficient role"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             "unauthorized",
		"error_description": description,
	})
}
