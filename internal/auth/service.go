// Package auth wraps the hosted authentication service: email/password
// sign-in and password-reset dispatch go through the Identity Toolkit API
// (the surface behind the client SDK), while session state is carried in
// Firebase session cookies minted and verified by the Admin SDK. Known
// service error codes map to sentinel errors; everything else propagates
// wrapped but otherwise unchanged.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/iscottycodes/contentcontest/internal/backend"
)

// Identity is the signed-in user attached to a verified session.
type Identity struct {
	UID   string
	Email string
}

// Service handles authentication operations.
type Service struct {
	itk        *identitytoolkit.RelyingpartyService
	authClient *fbauth.Client
	cookieTTL  time.Duration
}

// New creates an auth service. apiKey is the web API key the Identity
// Toolkit endpoints require; cookieTTL bounds the session cookie lifetime.
// A nil authClient is accepted; every operation then fails with
// backend.ErrNotConfigured instead of reaching the hosted service.
func New(ctx context.Context, apiKey string, authClient *fbauth.Client, cookieTTL time.Duration) (*Service, error) {
	if authClient == nil {
		return &Service{cookieTTL: cookieTTL}, nil
	}

	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("initialize identity toolkit: %w", err)
	}
	return &Service{
		itk:        svc.Relyingparty,
		authClient: authClient,
		cookieTTL:  cookieTTL,
	}, nil
}

// SignIn verifies an email/password pair against the auth service and
// returns a session cookie value on success.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	if s.itk == nil {
		return "", backend.ErrNotConfigured
	}

	resp, err := s.itk.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return "", mapServiceError(err)
	}

	cookie, err := s.authClient.SessionCookie(ctx, resp.IdToken, s.cookieTTL)
	if err != nil {
		return "", fmt.Errorf("mint session cookie: %w", err)
	}
	return cookie, nil
}

// VerifySession validates a session cookie and returns the identity it
// carries. Returns ErrSessionExpired for expired or revoked sessions.
func (s *Service) VerifySession(ctx context.Context, cookie string) (*Identity, error) {
	if s.authClient == nil {
		return nil, backend.ErrNotConfigured
	}

	token, err := s.authClient.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		if fbauth.IsSessionCookieRevoked(err) || fbauth.IsSessionCookieExpired(err) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("verify session cookie: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	return &Identity{UID: token.UID, Email: email}, nil
}

// SignOut revokes all refresh tokens for a user, invalidating their
// session cookies on the next revocation check.
func (s *Service) SignOut(ctx context.Context, uid string) error {
	if s.authClient == nil {
		return backend.ErrNotConfigured
	}
	return s.authClient.RevokeRefreshTokens(ctx, uid)
}

// SendPasswordReset asks the auth service to dispatch a password-reset
// email. The service's own error codes surface via the sentinel mapping.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	if s.itk == nil {
		return backend.ErrNotConfigured
	}

	_, err := s.itk.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil {
		return mapServiceError(err)
	}
	return nil
}

// CookieTTL returns the configured session cookie lifetime.
func (s *Service) CookieTTL() time.Duration {
	return s.cookieTTL
}

// mapServiceError translates known Identity Toolkit error codes into
// sentinel errors. Unknown codes are returned unchanged so callers see
// the backend's own failure.
func mapServiceError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	code := gerr.Message
	switch {
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"):
		return ErrUserNotFound
	case strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(code, "INVALID_EMAIL"):
		return ErrInvalidCredentials
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return ErrTooManyAttempts
	case strings.HasPrefix(code, "USER_DISABLED"):
		return ErrUserDisabled
	}
	return err
}
