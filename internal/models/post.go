package models

import "time"

// TrustedHTML marks post body content as admin-entered HTML that is
// rendered without escaping. Values of this type must only ever come
// from the blog editor, which is restricted to admins. Sanitization is
// an explicit future extension point, not an implicit trust boundary.
type TrustedHTML string

// BlogPost represents a row in the blog_posts table.
type BlogPost struct {
	ID          int64       `db:"id"`
	AuthorID    int64       `db:"author_id"`
	Title       string      `db:"title"`
	Slug        string      `db:"slug"`
	Body        TrustedHTML `db:"body"`
	Excerpt     string      `db:"excerpt"`
	IsPublished bool        `db:"is_published"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

// BlogPostListing is a blog_posts row joined with its author's name,
// as shown on the listing and detail pages.
type BlogPostListing struct {
	BlogPost
	AuthorFirstName string `db:"first_name"`
	AuthorLastName  string `db:"last_name"`
}

// AuthorName joins the author's first and last names for display.
func (p BlogPostListing) AuthorName() string {
	return p.AuthorFirstName + " " + p.AuthorLastName
}
