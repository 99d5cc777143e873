package auth

import (
	"context"
	"net/http"
	"strings"
)

// SessionCookie carries the token for the HTML pages.
const SessionCookie = "session"

type contextKey string

const (
	ownerKey = contextKey("owner")
	nameKey  = contextKey("name")
)

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(WithOwner(ctx, claims.Owner()), nameKey, claims.Subject)
}

// NameFromContext returns the signed-in login, empty for anonymous or local owners.
func NameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(nameKey).(string)
	return name
}

func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey).(string)
	return owner, ok && owner != ""
}

// tokenFromRequest prefers the Authorization header and falls back to the session cookie.
func tokenFromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

// JWTMiddleware rejects requests without a valid token.
func JWTMiddleware(s *Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := tokenFromRequest(r)
		if !ok {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		claims, err := s.ParseToken(tokenStr)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// SessionMiddleware attaches the owner when a valid token is present and lets
// anonymous requests through; pages decide themselves whether to redirect.
func SessionMiddleware(s *Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenStr, ok := tokenFromRequest(r); ok {
			if claims, err := s.ParseToken(tokenStr); err == nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// StaticOwner serves every request as owner. Used when sign-in is disabled.
func StaticOwner(owner string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
	})
}
