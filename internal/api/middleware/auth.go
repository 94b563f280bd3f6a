// Package middleware holds HTTP middleware for authentication and request
// identity.
package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/quantdesk/quantdesk/internal/api/response"
	"github.com/quantdesk/quantdesk/internal/core"
)

type contextKey string

const userIDKey contextKey = "user_id"

// APIKeyAuth returns middleware that validates the X-API-Key header.
// If apiKey is empty, authentication is disabled.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get("X-API-Key")
			if providedKey == "" {
				response.Error(w, http.StatusUnauthorized,
					core.WrapError(core.ErrConfigMissing, fmt.Errorf("missing X-API-Key header")))
				return
			}

			// Constant-time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				response.Error(w, http.StatusUnauthorized,
					core.WrapError(core.ErrConfigInvalid, fmt.Errorf("invalid API key")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser returns middleware that extracts the X-User-ID header and
// stores it in the request context. Requests without it are rejected.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				response.Error(w, http.StatusBadRequest,
					core.WrapError(core.ErrInvalidParameter, fmt.Errorf("missing X-User-ID header")))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID stores the user ID in a context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the user ID stored in the context, if any.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
