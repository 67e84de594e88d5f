package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"goldengirlWebsite/internal/models"
)

var slugStripPattern = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// slugify derives a URL-safe identifier from a post title:
// "My First Post!" becomes "my-first-post". Every run of characters
// outside [A-Za-z0-9-] collapses to a single hyphen.
func slugify(title string) string {
	slug := slugStripPattern.ReplaceAllString(title, "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}

// slugExists reports whether any post other than excludeID holds slug.
// Pass excludeID 0 to check against all posts.
func (app *App) slugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var id int64
	err := app.DB.GetContext(ctx, &id,
		`SELECT id FROM blog_posts WHERE slug = ? AND id != ? LIMIT 1`, slug, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking slug uniqueness: %w", err)
	}
	return true, nil
}

// CreatePost inserts a new post. A slug is derived from the title; when
// it collides with an existing post a unix-time suffix keeps it unique.
func (app *App) CreatePost(ctx context.Context, authorID int64, title string, body models.TrustedHTML, excerpt string, published bool) (int64, string, error) {
	slug := slugify(title)

	taken, err := app.slugExists(ctx, slug, 0)
	if err != nil {
		return 0, "", err
	}
	if taken {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
	}

	id, err := app.insertPost(ctx, authorID, title, slug, body, excerpt, published)
	if isUniqueViolation(err) {
		// Lost the check-then-insert race: disambiguate and retry once.
		slug = fmt.Sprintf("%s-%d", slugify(title), time.Now().UnixNano())
		id, err = app.insertPost(ctx, authorID, title, slug, body, excerpt, published)
	}
	if err != nil {
		return 0, "", fmt.Errorf("inserting post: %w", err)
	}

	AppLogger.Infow("post created", "post_id", id, "slug", slug, "published", published)
	return id, slug, nil
}

func (app *App) insertPost(ctx context.Context, authorID int64, title, slug string, body models.TrustedHTML, excerpt string, published bool) (int64, error) {
	now := time.Now()
	res, err := app.DB.ExecContext(ctx, `
		INSERT INTO blog_posts (author_id, title, slug, body, excerpt, is_published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		authorID, title, slug, string(body), excerpt, published, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost saves edits to an existing post. The stored slug is
// preserved so published URLs keep working; it is only replaced when
// the slug newly derived from the title collides with a different
// post, in which case the post's own id disambiguates it.
func (app *App) UpdatePost(ctx context.Context, post *models.BlogPost, title string, body models.TrustedHTML, excerpt string, published bool) (string, error) {
	slug := post.Slug

	if derived := slugify(title); derived != post.Slug {
		taken, err := app.slugExists(ctx, derived, post.ID)
		if err != nil {
			return "", err
		}
		if taken {
			slug = fmt.Sprintf("%s-%d", derived, post.ID)
		}
	}

	_, err := app.DB.ExecContext(ctx, `
		UPDATE blog_posts
		SET title = ?, slug = ?, body = ?, excerpt = ?, is_published = ?, updated_at = ?
		WHERE id = ? AND author_id = ?`,
		title, slug, string(body), excerpt, published, time.Now(), post.ID, post.AuthorID)
	if err != nil {
		return "", fmt.Errorf("updating post: %w", err)
	}

	AppLogger.Infow("post updated", "post_id", post.ID, "slug", slug)
	return slug, nil
}

// TogglePublished flips a post between draft and published.
func (app *App) TogglePublished(ctx context.Context, postID int64) error {
	res, err := app.DB.ExecContext(ctx,
		`UPDATE blog_posts SET is_published = 1 - is_published, updated_at = ? WHERE id = ?`,
		time.Now(), postID)
	if err != nil {
		return fmt.Errorf("toggling post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPosts returns posts joined with author names, newest first.
// Drafts are included only for the admin view.
func (app *App) ListPosts(ctx context.Context, includeDrafts bool) ([]models.BlogPostListing, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.slug, p.body, p.excerpt, p.is_published,
		       p.created_at, p.updated_at, u.first_name, u.last_name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id`
	if !includeDrafts {
		query += ` WHERE p.is_published = 1`
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	var posts []models.BlogPostListing
	if err := app.DB.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	return posts, nil
}

// GetPostBySlug fetches one post with its author's name. Returns
// ErrNotFound when no post has the slug.
func (app *App) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPostListing, error) {
	var post models.BlogPostListing
	err := app.DB.GetContext(ctx, &post, `
		SELECT p.id, p.author_id, p.title, p.slug, p.body, p.excerpt, p.is_published,
		       p.created_at, p.updated_at, u.first_name, u.last_name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = ? LIMIT 1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying post by slug: %w", err)
	}
	return &post, nil
}

// GetPostByID fetches one post for the editor. Returns ErrNotFound when
// the id does not exist.
func (app *App) GetPostByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	var post models.BlogPost
	err := app.DB.GetContext(ctx, &post, `
		SELECT id, author_id, title, slug, body, excerpt, is_published, created_at, updated_at
		FROM blog_posts WHERE id = ? LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying post by id: %w", err)
	}
	return &post, nil
}
