package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iscottycodes/contentcontest/internal/auth"
	"github.com/iscottycodes/contentcontest/internal/token"
)

// stubAuth accepts a single known session cookie value.
type stubAuth struct {
	validCookie string
	identity    *auth.Identity
}

func (s *stubAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	return s.validCookie, nil
}

func (s *stubAuth) VerifySession(ctx context.Context, cookie string) (*auth.Identity, error) {
	if cookie == s.validCookie {
		return s.identity, nil
	}
	return nil, auth.ErrSessionExpired
}

func (s *stubAuth) SignOut(ctx context.Context, uid string) error { return nil }

func (s *stubAuth) SendPasswordReset(ctx context.Context, email string) error { return nil }

func newStubAuth() *stubAuth {
	return &stubAuth{
		validCookie: "valid-session",
		identity:    &auth.Identity{UID: "admin-uid", Email: "admin@example.com"},
	}
}

func TestAuthMiddleware_NoCookieRedirectsToLogin(t *testing.T) {
	guarded := AuthMiddleware(newStubAuth())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler ran for unauthenticated request")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, want /admin/login", loc)
	}
}

func TestAuthMiddleware_InvalidCookieRedirectsAndClears(t *testing.T) {
	guarded := AuthMiddleware(newStubAuth())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler ran for invalid session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/blog", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale-session"})
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, want /admin/login", loc)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("stale session cookie was not cleared")
	}
}

func TestAuthMiddleware_ValidCookiePassesThrough(t *testing.T) {
	ran := false
	guarded := AuthMiddleware(newStubAuth())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Error("identity missing from context")
			return
		}
		if identity.Email != "admin@example.com" {
			t.Errorf("identity email = %q, want admin@example.com", identity.Email)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid-session"})
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if !ran {
		t.Fatal("protected handler did not run for authenticated request")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAPIAuthMiddleware(t *testing.T) {
	tokens := token.New("test-key", "contentcontest-test")

	guarded := APIAuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/submissions", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		tok, err := tokens.Generate("admin-uid", "admin@example.com", time.Minute)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}
