package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/iscottycodes/contentcontest/internal/auth"
	"github.com/iscottycodes/contentcontest/internal/token"
)

// sessionCookieName carries the admin session cookie.
const sessionCookieName = "admin_session"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// identityContextKey stores the authenticated identity in request context.
	identityContextKey contextKey = "identity"
)

// AuthMiddleware is the admin route guard: it verifies the session cookie
// and redirects unauthenticated visitors to the login page. The verified
// identity is stored in request context for downstream handlers.
func AuthMiddleware(authService Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			identity, err := authService.VerifySession(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, auth.ErrSessionExpired) {
					log.Printf("Session verification error: %v", err)
				}
				clearSessionCookie(w)
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APIAuthMiddleware guards the JSON admin API with bearer tokens issued
// by the token service. Returns 401 rather than redirecting.
func APIAuthMiddleware(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			identity := &auth.Identity{UID: claims.UID, Email: claims.Email}
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from request
// context.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*auth.Identity)
	return identity, ok
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
