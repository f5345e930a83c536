package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/iscottycodes/contentcontest/pkg/models"
)

// ListBlogPosts returns posts newest first. A non-empty postType narrows
// to that category. publishedOnly restricts to published posts ordered by
// publication time instead of creation time.
func (db *DB) ListBlogPosts(ctx context.Context, postType models.BlogType, publishedOnly bool) ([]models.BlogPost, error) {
	if err := db.ready(); err != nil {
		return nil, err
	}

	col := db.client.Collection(models.CollectionBlogPosts)

	q := col.OrderBy("createdAt", firestore.Desc)
	if postType != "" {
		q = col.Where("type", "==", string(postType)).
			OrderBy("createdAt", firestore.Desc)
	}
	if publishedOnly {
		q = col.Where("status", "==", string(models.BlogPublished)).
			OrderBy("publishedAt", firestore.Desc)
		if postType != "" {
			q = col.Where("status", "==", string(models.BlogPublished)).
				Where("type", "==", string(postType)).
				OrderBy("publishedAt", firestore.Desc)
		}
	}

	var posts []models.BlogPost
	err := collectDocs(ctx, q, func(snap *firestore.DocumentSnapshot) error {
		var p models.BlogPost
		if err := snap.DataTo(&p); err != nil {
			return err
		}
		p.ID = snap.Ref.ID
		posts = append(posts, p)
		return nil
	})
	return posts, err
}

// GetBlogPost returns a post by ID, or (nil, nil) if absent.
func (db *DB) GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error) {
	snap, err := db.getDoc(ctx, models.CollectionBlogPosts, id)
	if err != nil || snap == nil {
		return nil, err
	}
	var p models.BlogPost
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

// AddBlogPost creates a post with zero views and server-assigned timestamps.
func (db *DB) AddBlogPost(ctx context.Context, p *models.BlogPost) (string, error) {
	if err := db.ready(); err != nil {
		return "", err
	}

	p.Views = 0
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
	ref, _, err := db.client.Collection(models.CollectionBlogPosts).Add(ctx, p)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateBlogPost replaces the mutable fields of a post and re-stamps
// updatedAt. The view counter is not touched here.
func (db *DB) UpdateBlogPost(ctx context.Context, id string, p *models.BlogPost) error {
	if err := db.ready(); err != nil {
		return err
	}

	updates := []firestore.Update{
		{Path: "title", Value: p.Title},
		{Path: "slug", Value: p.Slug},
		{Path: "content", Value: p.Content},
		{Path: "excerpt", Value: p.Excerpt},
		{Path: "type", Value: string(p.Type)},
		{Path: "status", Value: string(p.Status)},
		{Path: "author", Value: p.Author},
		touch,
	}
	if p.FeaturedImage != "" {
		updates = append(updates, firestore.Update{Path: "featuredImage", Value: p.FeaturedImage})
	}
	if !p.PublishedAt.IsZero() {
		updates = append(updates, firestore.Update{Path: "publishedAt", Value: p.PublishedAt})
	}
	_, err := db.client.Collection(models.CollectionBlogPosts).Doc(id).Update(ctx, updates)
	return err
}

// DeleteBlogPost removes a post. Irreversible.
func (db *DB) DeleteBlogPost(ctx context.Context, id string) error {
	if err := db.ready(); err != nil {
		return err
	}
	_, err := db.client.Collection(models.CollectionBlogPosts).Doc(id).Delete(ctx)
	return err
}

// IncrementBlogViews bumps the monotonically increasing view counter.
func (db *DB) IncrementBlogViews(ctx context.Context, id string) error {
	if err := db.ready(); err != nil {
		return err
	}
	_, err := db.client.Collection(models.CollectionBlogPosts).Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	return err
}
