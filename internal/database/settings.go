package database

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/iscottycodes/contentcontest/pkg/models"
)

// settingsDocID is the single site-configuration document.
const settingsDocID = "site"

// GetSettings returns the site settings document, or (nil, nil) if it has
// never been written.
func (db *DB) GetSettings(ctx context.Context) (*models.Settings, error) {
	snap, err := db.getDoc(ctx, models.CollectionSettings, settingsDocID)
	if err != nil || snap == nil {
		return nil, err
	}
	var s models.Settings
	if err := snap.DataTo(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettings overwrites the site settings document, creating it if
// absent. updatedAt is server-assigned.
func (db *DB) UpdateSettings(ctx context.Context, s *models.Settings) error {
	if err := db.ready(); err != nil {
		return err
	}
	_, err := db.client.Collection(models.CollectionSettings).Doc(settingsDocID).Set(ctx, map[string]interface{}{
		"contactEmail":    s.ContactEmail,
		"submissionsOpen": s.SubmissionsOpen,
		"announcementDay": s.AnnouncementDay,
		"updatedAt":       firestore.ServerTimestamp,
	})
	return err
}
