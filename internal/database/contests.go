package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/iscottycodes/contentcontest/pkg/models"
)

// ListContests returns contests newest first, optionally filtered by status.
func (db *DB) ListContests(ctx context.Context, status models.ContestStatus) ([]models.Contest, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	q := db.client.Collection(models.CollectionContests).
		OrderBy("createdAt", firestore.Desc)
	if status != "" {
		q = db.client.Collection(models.CollectionContests).
			Where("status", "==", string(status)).
			OrderBy("createdAt", firestore.Desc)
	}

	var contests []models.Contest
	err := collectDocs(ctx, q, func(snap *firestore.DocumentSnapshot) error {
		var c models.Contest
		if err := snap.DataTo(&c); err != nil {
			return err
		}
		c.ID = snap.Ref.ID
		contests = append(contests, c)
		return nil
	})
	return contests, err
}

// GetContest returns a contest by ID, or (nil, nil) if absent.
func (db *DB) GetContest(ctx context.Context, id string) (*models.Contest, error) {
	snap, err := db.getDoc(ctx, models.CollectionContests, id)
	if err != nil || snap == nil {
		return nil, err
	}
	var c models.Contest
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID
	return &c, nil
}

// AddContest creates a contest with server-assigned timestamps.
func (db *DB) AddContest(ctx context.Context, c *models.Contest) (string, error) {
	if err := db.ready(); err != nil {
		return "", err
	}

	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
	ref, _, err := db.client.Collection(models.CollectionContests).Add(ctx, c)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateContest replaces the mutable fields of a contest.
func (db *DB) UpdateContest(ctx context.Context, id string, c *models.Contest) error {
	if err := db.ready(); err != nil {
		return err
	}

	updates := []firestore.Update{
		{Path: "title", Value: c.Title},
		{Path: "description", Value: c.Description},
		{Path: "week", Value: c.Week},
		{Path: "status", Value: string(c.Status)},
		{Path: "openDate", Value: c.OpenDate},
		{Path: "closeDate", Value: c.CloseDate},
		{Path: "prizeFirst", Value: c.PrizeFirst},
		{Path: "prizeSecond", Value: c.PrizeSecond},
		{Path: "prizeThird", Value: c.PrizeThird},
		{Path: "rules", Value: c.Rules},
		touch,
	}
	if !c.AnnounceDate.IsZero() {
		updates = append(updates, firestore.Update{Path: "announceDate", Value: c.AnnounceDate})
	}
	_, err := db.client.Collection(models.CollectionContests).Doc(id).Update(ctx, updates)
	return err
}

// DeleteContest removes a contest. Irreversible.
func (db *DB) DeleteContest(ctx context.Context, id string) error {
	if err := db.ready(); err != nil {
		return err
	}
	_, err := db.client.Collection(models.CollectionContests).Doc(id).Delete(ctx)
	return err
}
