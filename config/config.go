package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Auth     AuthConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type FirebaseConfig struct {
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
	CredentialsPath   string
	// Emulator support for integration testing
	UseEmulator           bool
	EmulatorAuthHost      string
	EmulatorFirestoreHost string
}

type AuthConfig struct {
	SessionCookieMaxAge int // seconds (default: 3600 = 1 hour)
}

type JWTConfig struct {
	SigningKey string // Secret key for JWT signing
	Issuer     string // JWT issuer claim
}

// Load returns application configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Firebase: FirebaseConfig{
			APIKey:                getEnv("FIREBASE_API_KEY", ""),
			AuthDomain:            getEnv("FIREBASE_AUTH_DOMAIN", ""),
			ProjectID:             getEnv("FIREBASE_PROJECT_ID", ""),
			StorageBucket:         getEnv("FIREBASE_STORAGE_BUCKET", ""),
			MessagingSenderID:     getEnv("FIREBASE_MESSAGING_SENDER_ID", ""),
			AppID:                 getEnv("FIREBASE_APP_ID", ""),
			CredentialsPath:       getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			UseEmulator:           getEnvBool("USE_FIREBASE_EMULATOR", false),
			EmulatorAuthHost:      getEnv("FIREBASE_AUTH_EMULATOR_HOST", "localhost:9099"),
			EmulatorFirestoreHost: getEnv("FIRESTORE_EMULATOR_HOST", "localhost:8081"),
		},
		Auth: AuthConfig{
			SessionCookieMaxAge: getEnvInt("SESSION_COOKIE_MAX_AGE", 3600), // 1 hour
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", ""),
			Issuer:     getEnv("JWT_ISSUER", "contentcontest"),
		},
	}
}

// requiredFirebaseVars maps env var names to their loaded values.
func (c *Config) requiredFirebaseVars() map[string]string {
	return map[string]string{
		"FIREBASE_API_KEY":             c.Firebase.APIKey,
		"FIREBASE_AUTH_DOMAIN":         c.Firebase.AuthDomain,
		"FIREBASE_PROJECT_ID":          c.Firebase.ProjectID,
		"FIREBASE_STORAGE_BUCKET":      c.Firebase.StorageBucket,
		"FIREBASE_MESSAGING_SENDER_ID": c.Firebase.MessagingSenderID,
		"FIREBASE_APP_ID":              c.Firebase.AppID,
	}
}

// MissingFirebaseVars returns the names of required Firebase configuration
// values that are unset. In production the caller should treat a non-empty
// result as fatal; in development the backend simply stays uninitialized
// and data access fails at the point of use.
func (c *Config) MissingFirebaseVars() []string {
	var missing []string
	for _, name := range []string{
		"FIREBASE_API_KEY",
		"FIREBASE_AUTH_DOMAIN",
		"FIREBASE_PROJECT_ID",
		"FIREBASE_STORAGE_BUCKET",
		"FIREBASE_MESSAGING_SENDER_ID",
		"FIREBASE_APP_ID",
	} {
		if c.requiredFirebaseVars()[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// FirebaseConfigured reports whether every required Firebase value is present.
func (c *Config) FirebaseConfigured() bool {
	return len(c.MissingFirebaseVars()) == 0
}

// IsProduction reports whether the server runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolVal, err := strconv.ParseBool(value)
		if err == nil {
			return boolVal
		}
	}
	return defaultValue
}
