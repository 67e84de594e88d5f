package main

import (
	"errors"
	"net/http"
)

// handleBlog lists posts. Everyone sees published posts; admins also
// see drafts with management controls.
func (app *App) handleBlog(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	posts, err := app.ListPosts(r.Context(), sess.IsAdmin())
	if err != nil {
		AppLogger.Errorw("failed to list posts", "err", err)
		app.render(w, r, "blog", "Blog", map[string]any{
			"Errors": []string{"A database error occurred. Please try again later."},
		})
		return
	}

	data := map[string]any{"Posts": posts}
	if r.URL.Query().Has("toggled") {
		data["Success"] = "Post visibility updated."
	}
	app.render(w, r, "blog", "Blog", data)
}

// handleBlogPost shows a single post looked up by slug. Drafts are
// only visible to admins; everyone else is sent back to the listing.
func (app *App) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	slug := r.URL.Query().Get("slug")
	if slug == "" {
		http.Redirect(w, r, app.path("/blog"), http.StatusSeeOther)
		return
	}

	post, err := app.GetPostBySlug(r.Context(), slug)
	if errors.Is(err, ErrNotFound) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		app.render(w, r, "not_found", "Post Not Found", nil)
		return
	}
	if err != nil {
		AppLogger.Errorw("failed to load post", "slug", slug, "err", err)
		http.Error(w, "A database error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	if !post.IsPublished && !sess.IsAdmin() {
		http.Redirect(w, r, app.path("/blog"), http.StatusSeeOther)
		return
	}

	app.render(w, r, "blog_post", post.Title, map[string]any{"Post": post})
}
