// Package middleware provides HTTP middleware for the TripWise API server.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// userIDKey is the context key for the authenticated user's ID.
// Unexported so nothing outside this package can write it; handlers read it
// once via UserID and pass the value explicitly from there on.
type userIDKey struct{}

// UserID returns the authenticated user's ID placed in the context by
// NewAuthenticator. The second return is false when the request did not pass
// through the authenticator — a wiring error, not a client error.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

// WithUserID returns a context carrying the given user ID.
// Exported for handler tests that need to simulate an authenticated request
// without minting a token.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// NewAuthenticator returns a middleware that requires a valid Bearer JWT
// signed with secret (HS256). The token's "sub" claim must be the user's
// UUID; it is placed in the request context for UserID.
//
// Token issuance is an external collaborator's job — this server only
// verifies.
func NewAuthenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !parsed.Valid {
				unauthorized(w, "invalid token")
				return
			}

			sub, err := parsed.Claims.GetSubject()
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				unauthorized(w, "invalid token subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// unauthorized writes a 401 with the API's standard error envelope.
// Kept local to avoid a middleware → handler dependency.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"unauthorized","message":"` + message + `"}}`))
}
