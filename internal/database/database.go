// Package database holds the data-access functions over the hosted
// document store: one function per entity per operation, each building a
// query and mapping results to typed records. Backend errors propagate to
// the caller unchanged; there is no retry, caching, or translation here.
package database

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/iscottycodes/contentcontest/internal/backend"
)

// DB wraps the Firestore client.
type DB struct {
	client *firestore.Client
}

// New creates a DB over a Firestore client. A nil client is accepted;
// every operation then fails with backend.ErrNotConfigured, so an
// unconfigured development instance degrades per request instead of at
// startup.
func New(client *firestore.Client) *DB {
	return &DB{client: client}
}

// ready reports whether the Firestore binding was initialized.
func (db *DB) ready() error {
	if db.client == nil {
		return backend.ErrNotConfigured
	}
	return nil
}

// getDoc fetches a single document snapshot. Returns (nil, nil) if the
// document does not exist.
func (db *DB) getDoc(ctx context.Context, collection, id string) (*firestore.DocumentSnapshot, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	snap, err := db.client.Collection(collection).Doc(id).Get(ctx)
	if snap != nil && !snap.Exists() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// collectDocs drains a query iterator, invoking decode for each snapshot.
func collectDocs(ctx context.Context, q firestore.Query, decode func(*firestore.DocumentSnapshot) error) error {
	iter := q.Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := decode(snap); err != nil {
			return err
		}
	}
}

// touch is the update entry that re-stamps updatedAt with server time.
var touch = firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp}
