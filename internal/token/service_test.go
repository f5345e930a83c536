package token

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-signing-key", "contentcontest-test")

	tok, err := svc.Generate("uid-123", "admin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UID != "uid-123" {
		t.Errorf("UID = %q, want uid-123", claims.UID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q, want admin@example.com", claims.Email)
	}
	if claims.Issuer != "contentcontest-test" {
		t.Errorf("Issuer = %q, want contentcontest-test", claims.Issuer)
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := New("test-signing-key", "contentcontest-test")

	tok, err := svc.Generate("uid-123", "admin@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Validate(tok); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidate_WrongKey(t *testing.T) {
	svc := New("key-one", "contentcontest-test")
	other := New("key-two", "contentcontest-test")

	tok, err := svc.Generate("uid-123", "admin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := other.Validate(tok); err == nil {
		t.Error("expected error for token signed with a different key")
	}
}

func TestValidate_Garbage(t *testing.T) {
	svc := New("test-signing-key", "contentcontest-test")
	if _, err := svc.Validate("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestGenerateSigningKey(t *testing.T) {
	k1, err := GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey: %v", err)
	}
	if len(k1) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(k1))
	}
	if strings.ToLower(k1) != k1 {
		t.Error("key should be lowercase hex")
	}

	k2, err := GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey: %v", err)
	}
	if k1 == k2 {
		t.Error("two generated keys should differ")
	}
}
