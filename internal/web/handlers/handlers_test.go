package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/iscottycodes/contentcontest/config"
	"github.com/iscottycodes/contentcontest/internal/token"
)

// newTestHandler builds a handler with a nil database and uploader. Any
// test that reaches the backend through it will panic, which is exactly
// the property the honeypot tests rely on.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return New(nil, nil, config.Load(), newStubAuth(), token.New("test-key", "test"))
}

func postForm(h http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestContactPost_HoneypotRejectsWithoutBackendCall(t *testing.T) {
	h := newTestHandler(t)

	// The handler has no database or uploader; if the honeypot branch
	// touched either, this would panic instead of rendering the error.
	rec := postForm(h.ContactPost, "/contact", url.Values{
		"name":    {"Bot Botson"},
		"email":   {"bot@example.com"},
		"message": {"buy now"},
		"website": {"http://spam.example"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Spam detected") {
		t.Error("response does not contain the spam-detected error")
	}
	if strings.Contains(rec.Body.String(), "Message Sent") {
		t.Error("honeypot submission was treated as success")
	}
}

func TestContactPost_LegitimateMessageSucceeds(t *testing.T) {
	h := newTestHandler(t)

	rec := postForm(h.ContactPost, "/contact", url.Values{
		"name":    {"Pat Example"},
		"email":   {"pat@example.com"},
		"message": {"Love the contest!"},
		"website": {""},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Message Sent") {
		t.Error("legitimate message did not render the success page")
	}
}

func TestContactPost_MissingFieldsRejected(t *testing.T) {
	h := newTestHandler(t)

	rec := postForm(h.ContactPost, "/contact", url.Values{
		"name": {"Pat Example"},
	})

	if !strings.Contains(rec.Body.String(), "required") {
		t.Error("missing-field submission did not render a validation error")
	}
}

func TestSubmitPost_MissingRequiredFields(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	h.SubmitPost(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with inline error", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid form data") && !strings.Contains(body, "required") {
		t.Error("empty submission did not render a validation error")
	}
}

func TestLoginPost_MissingCredentials(t *testing.T) {
	h := newTestHandler(t)

	rec := postForm(h.Login, "/admin/login", url.Values{"email": {"a@b.c"}})
	if !strings.Contains(rec.Body.String(), "required") {
		t.Error("missing password did not render a validation error")
	}
}

func TestLoginPost_SetsSessionCookie(t *testing.T) {
	h := newTestHandler(t)

	rec := postForm(h.Login, "/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"hunter2"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want /admin", loc)
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no session cookie set")
	}
	if session.Value != "valid-session" {
		t.Errorf("cookie value = %q, want valid-session", session.Value)
	}
	if !session.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
}

func TestAPIToken_RequiresSession(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/token", nil)
	rec := httptest.NewRecorder()
	h.APIToken(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIToken_ExchangesSessionForBearer(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/token", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid-session"})
	rec := httptest.NewRecorder()
	h.APIToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token") {
		t.Error("response does not contain a token")
	}
}

func TestSubmitPage_RendersForm(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/submit", nil)
	rec := httptest.NewRecorder()
	h.SubmitPage(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "contentType") {
		t.Error("submission form missing content type selector")
	}
	if !strings.Contains(body, "enctype=\"multipart/form-data\"") {
		t.Error("submission form is not multipart")
	}
}

func TestContactPage_ContainsHoneypotField(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := httptest.NewRecorder()
	h.ContactPage(rec, req)

	if !strings.Contains(rec.Body.String(), `name="website"`) {
		t.Error("contact form missing honeypot field")
	}
}
