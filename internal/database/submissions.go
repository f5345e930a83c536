package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/iscottycodes/contentcontest/pkg/models"
)

// ListSubmissions returns submissions newest first, optionally filtered by
// status. An empty status returns all submissions.
func (db *DB) ListSubmissions(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	q := db.client.Collection(models.CollectionSubmissions).
		OrderBy("createdAt", firestore.Desc)
	if status != "" {
		q = db.client.Collection(models.CollectionSubmissions).
			Where("status", "==", string(status)).
			OrderBy("createdAt", firestore.Desc)
	}

	var subs []models.Submission
	err := collectDocs(ctx, q, func(snap *firestore.DocumentSnapshot) error {
		var s models.Submission
		if err := snap.DataTo(&s); err != nil {
			return err
		}
		s.ID = snap.Ref.ID
		subs = append(subs, s)
		return nil
	})
	return subs, err
}

// GetSubmission returns a submission by ID, or (nil, nil) if absent.
func (db *DB) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	snap, err := db.getDoc(ctx, models.CollectionSubmissions, id)
	if err != nil || snap == nil {
		return nil, err
	}
	var s models.Submission
	if err := snap.DataTo(&s); err != nil {
		return nil, err
	}
	s.ID = snap.Ref.ID
	return &s, nil
}

// AddSubmission creates a submission. Status is forced to pending and the
// created/updated timestamps are server-assigned regardless of what the
// caller supplied.
func (db *DB) AddSubmission(ctx context.Context, s *models.Submission) (string, error) {
	if err := db.ready(); err != nil {
		return "", err
	}

	s.Status = models.SubmissionPending
	// Zero timestamps so the serverTimestamp tags take effect.
	s.CreatedAt = time.Time{}
	s.UpdatedAt = time.Time{}
	ref, _, err := db.client.Collection(models.CollectionSubmissions).Add(ctx, s)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateSubmissionStatus sets the review status and optional place for a
// submission and re-stamps updatedAt.
func (db *DB) UpdateSubmissionStatus(ctx context.Context, id string, status models.SubmissionStatus, place int) error {
	if err := db.ready(); err != nil {
		return err
	}

	updates := []firestore.Update{
		{Path: "status", Value: string(status)},
		{Path: "place", Value: place},
		touch,
	}
	_, err := db.client.Collection(models.CollectionSubmissions).Doc(id).Update(ctx, updates)
	return err
}
