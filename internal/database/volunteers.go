package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/iscottycodes/contentcontest/pkg/models"
)

// ListVolunteers returns volunteer applications newest first, optionally
// filtered by pipeline status.
func (db *DB) ListVolunteers(ctx context.Context, status models.VolunteerStatus) ([]models.Volunteer, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	q := db.client.Collection(models.CollectionVolunteers).
		OrderBy("createdAt", firestore.Desc)
	if status != "" {
		q = db.client.Collection(models.CollectionVolunteers).
			Where("status", "==", string(status)).
			OrderBy("createdAt", firestore.Desc)
	}

	var vols []models.Volunteer
	err := collectDocs(ctx, q, func(snap *firestore.DocumentSnapshot) error {
		var v models.Volunteer
		if err := snap.DataTo(&v); err != nil {
			return err
		}
		v.ID = snap.Ref.ID
		vols = append(vols, v)
		return nil
	})
	return vols, err
}

// GetVolunteer returns a volunteer application by ID, or (nil, nil) if absent.
func (db *DB) GetVolunteer(ctx context.Context, id string) (*models.Volunteer, error) {
	snap, err := db.getDoc(ctx, models.CollectionVolunteers, id)
	if err != nil || snap == nil {
		return nil, err
	}
	var v models.Volunteer
	if err := snap.DataTo(&v); err != nil {
		return nil, err
	}
	v.ID = snap.Ref.ID
	return &v, nil
}

// AddVolunteer creates a volunteer application. Status is forced to "new"
// and timestamps are server-assigned.
func (db *DB) AddVolunteer(ctx context.Context, v *models.Volunteer) (string, error) {
	if err := db.ready(); err != nil {
		return "", err
	}

	v.Status = models.VolunteerNew
	v.CreatedAt = time.Time{}
	v.UpdatedAt = time.Time{}
	ref, _, err := db.client.Collection(models.CollectionVolunteers).Add(ctx, v)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateVolunteerStatus moves an application through the pipeline. A nil
// notes pointer leaves the stored notes untouched; a non-nil pointer
// replaces them, empty string included.
func (db *DB) UpdateVolunteerStatus(ctx context.Context, id string, status models.VolunteerStatus, notes *string) error {
	if err := db.ready(); err != nil {
		return err
	}

	updates := []firestore.Update{
		{Path: "status", Value: string(status)},
		touch,
	}
	if notes != nil {
		updates = append(updates, firestore.Update{Path: "notes", Value: *notes})
	}
	_, err := db.client.Collection(models.CollectionVolunteers).Doc(id).Update(ctx, updates)
	return err
}
