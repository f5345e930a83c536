package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/iscottycodes/contentcontest/pkg/models"
)

// ListSponsors returns sponsors ordered by tier then name, optionally
// filtered to a single tier.
func (db *DB) ListSponsors(ctx context.Context, tier models.SponsorTier) ([]models.Sponsor, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	q := db.client.Collection(models.CollectionSponsors).
		OrderBy("tier", firestore.Asc).
		OrderBy("name", firestore.Asc)
	if tier != "" {
		q = db.client.Collection(models.CollectionSponsors).
			Where("tier", "==", string(tier)).
			OrderBy("name", firestore.Asc)
	}
	return db.querySponsors(ctx, q)
}

// ListActiveSponsors returns active sponsors ordered by tier, for the
// public showcase.
func (db *DB) ListActiveSponsors(ctx context.Context) ([]models.Sponsor, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	q := db.client.Collection(models.CollectionSponsors).
		Where("status", "==", string(models.SponsorActive)).
		OrderBy("tier", firestore.Asc)
	return db.querySponsors(ctx, q)
}

// GetSponsor returns a sponsor by ID, or (nil, nil) if absent.
func (db *DB) GetSponsor(ctx context.Context, id string) (*models.Sponsor, error) {
	snap, err := db.getDoc(ctx, models.CollectionSponsors, id)
	if err != nil || snap == nil {
		return nil, err
	}
	var s models.Sponsor
	if err := snap.DataTo(&s); err != nil {
		return nil, err
	}
	s.ID = snap.Ref.ID
	return &s, nil
}

// AddSponsor creates a sponsor with a server-assigned creation timestamp.
func (db *DB) AddSponsor(ctx context.Context, s *models.Sponsor) (string, error) {
	if err := db.ready(); err != nil {
		return "", err
	}

	s.CreatedAt = time.Time{}
	ref, _, err := db.client.Collection(models.CollectionSponsors).Add(ctx, s)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateSponsor replaces the mutable fields of a sponsor.
func (db *DB) UpdateSponsor(ctx context.Context, id string, s *models.Sponsor) error {
	if err := db.ready(); err != nil {
		return err
	}

	updates := []firestore.Update{
		{Path: "name", Value: s.Name},
		{Path: "tier", Value: string(s.Tier)},
		{Path: "contact", Value: s.Contact},
		{Path: "email", Value: s.Email},
		{Path: "phone", Value: s.Phone},
		{Path: "website", Value: s.Website},
		{Path: "status", Value: string(s.Status)},
		{Path: "startDate", Value: s.StartDate},
	}
	if s.LogoURL != "" {
		updates = append(updates, firestore.Update{Path: "logoUrl", Value: s.LogoURL})
	}
	_, err := db.client.Collection(models.CollectionSponsors).Doc(id).Update(ctx, updates)
	return err
}

// DeleteSponsor removes a sponsor. Irreversible; there is no soft delete.
func (db *DB) DeleteSponsor(ctx context.Context, id string) error {
	if err := db.ready(); err != nil {
		return err
	}
	_, err := db.client.Collection(models.CollectionSponsors).Doc(id).Delete(ctx)
	return err
}

func (db *DB) querySponsors(ctx context.Context, q firestore.Query) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	err := collectDocs(ctx, q, func(snap *firestore.DocumentSnapshot) error {
		var s models.Sponsor
		if err := snap.DataTo(&s); err != nil {
			return err
		}
		s.ID = snap.Ref.ID
		sponsors = append(sponsors, s)
		return nil
	})
	return sponsors, err
}
