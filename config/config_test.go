package config

import "testing"

func setFirebaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_API_KEY", "key")
	t.Setenv("FIREBASE_AUTH_DOMAIN", "example.firebaseapp.com")
	t.Setenv("FIREBASE_PROJECT_ID", "example")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "example.appspot.com")
	t.Setenv("FIREBASE_MESSAGING_SENDER_ID", "123456")
	t.Setenv("FIREBASE_APP_ID", "1:123:web:abc")
}

func TestMissingFirebaseVars_AllSet(t *testing.T) {
	setFirebaseEnv(t)

	cfg := Load()
	if missing := cfg.MissingFirebaseVars(); len(missing) != 0 {
		t.Errorf("MissingFirebaseVars = %v, want none", missing)
	}
	if !cfg.FirebaseConfigured() {
		t.Error("FirebaseConfigured = false, want true")
	}
}

func TestMissingFirebaseVars_SomeUnset(t *testing.T) {
	setFirebaseEnv(t)
	t.Setenv("FIREBASE_API_KEY", "")
	t.Setenv("FIREBASE_APP_ID", "")

	cfg := Load()
	missing := cfg.MissingFirebaseVars()
	if len(missing) != 2 {
		t.Fatalf("MissingFirebaseVars = %v, want 2 entries", missing)
	}
	if missing[0] != "FIREBASE_API_KEY" || missing[1] != "FIREBASE_APP_ID" {
		t.Errorf("MissingFirebaseVars = %v, want [FIREBASE_API_KEY FIREBASE_APP_ID]", missing)
	}
	if cfg.FirebaseConfigured() {
		t.Error("FirebaseConfigured = true, want false")
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("SESSION_COOKIE_MAX_AGE", "")

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Server.Env)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction = true in development")
	}
	if cfg.Auth.SessionCookieMaxAge != 3600 {
		t.Errorf("SessionCookieMaxAge = %d, want 3600", cfg.Auth.SessionCookieMaxAge)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_COOKIE_MAX_AGE", "7200")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Error("IsProduction = false, want true")
	}
	if cfg.Auth.SessionCookieMaxAge != 7200 {
		t.Errorf("SessionCookieMaxAge = %d, want 7200", cfg.Auth.SessionCookieMaxAge)
	}
}
