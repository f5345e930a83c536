// Package backend initializes the hosted-service clients (Firestore,
// Firebase Auth, Cloud Storage) from configuration. It holds no logic of
// its own; everything else in the application borrows handles from here.
package backend

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/iscottycodes/contentcontest/config"
)

// ErrNotConfigured is returned when the required Firebase configuration
// values are absent and the clients were never initialized.
var ErrNotConfigured = errors.New("backend: firebase is not configured")

// Clients bundles the initialized hosted-service handles.
type Clients struct {
	Firestore *firestore.Client
	Auth      *fbauth.Client
	Bucket    *gcs.BucketHandle
}

// New initializes the Firebase app and derives the Firestore, Auth, and
// Storage handles from it. Returns ErrNotConfigured if any required
// configuration value is missing.
func New(ctx context.Context, cfg *config.Config) (*Clients, error) {
	if !cfg.FirebaseConfigured() {
		return nil, fmt.Errorf("%w: missing %v", ErrNotConfigured, cfg.MissingFirebaseVars())
	}

	if cfg.Firebase.UseEmulator {
		// The SDKs pick the emulator targets up from the environment.
		os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.Firebase.EmulatorFirestoreHost)
		os.Setenv("FIREBASE_AUTH_EMULATOR_HOST", cfg.Firebase.EmulatorAuthHost)
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.Firebase.ProjectID,
		StorageBucket: cfg.Firebase.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("initialize auth client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("initialize storage client: %w", err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("resolve default bucket: %w", err)
	}

	return &Clients{
		Firestore: fs,
		Auth:      authClient,
		Bucket:    bucket,
	}, nil
}

// Close releases the underlying connections. Safe to call on a Clients
// whose handles were never initialized.
func (c *Clients) Close() error {
	if c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
