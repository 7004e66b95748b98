package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
//
// Using a package-private type (instead of a plain string) means no other
// package can read or shadow the userID value we store in the context.
type contextKey string

const userIDKey contextKey = "userID"

// TokenCookieName is the HttpOnly cookie carrying the JWT.
//
// HttpOnly means page JavaScript cannot read the token, which keeps an XSS
// bug from turning into stolen sessions.
const TokenCookieName = "token"

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the token cookie, validates it, and stores the
// userID in the request context. Missing or invalid tokens get a 401 and
// the chain stops there.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractUserID pulls the JWT out of the request cookie and validates it.
func extractUserID(r *http.Request, tokens *TokenService) (int64, error) {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return 0, err
	}
	return tokens.Validate(cookie.Value)
}

// UserIDFromContext returns the authenticated user's id, if RequireAuth ran.
//
// Handlers behind RequireAuth can rely on ok being true; elsewhere it
// reports false.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
