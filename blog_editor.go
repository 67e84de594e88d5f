package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"goldengirlWebsite/internal/models"
)

// handleBlogEditor serves the admin post editor for both creating and
// editing. Editing is selected with ?edit=<id>.
func (app *App) handleBlogEditor(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	var post *models.BlogPost
	if editParam := r.URL.Query().Get("edit"); editParam != "" {
		editID, err := strconv.ParseInt(editParam, 10, 64)
		if err != nil {
			http.Redirect(w, r, app.path("/blog"), http.StatusSeeOther)
			return
		}
		post, err = app.GetPostByID(r.Context(), editID)
		if errors.Is(err, ErrNotFound) {
			http.Redirect(w, r, app.path("/blog"), http.StatusSeeOther)
			return
		}
		if err != nil {
			AppLogger.Errorw("failed to load post for editing", "post_id", editID, "err", err)
			http.Error(w, "A database error occurred. Please try again later.", http.StatusInternalServerError)
			return
		}
	}

	data := editorFormData(post)
	if r.URL.Query().Has("saved") {
		data["Success"] = "Post created! It is saved as a draft."
	}

	if r.Method != http.MethodPost {
		app.render(w, r, "blog_create", editorTitle(post), data)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	body := strings.TrimSpace(r.FormValue("body"))
	excerpt := strings.TrimSpace(r.FormValue("excerpt"))
	published := r.FormValue("is_published") != ""

	data["TitleField"] = title
	data["BodyField"] = body
	data["ExcerptField"] = excerpt
	data["Published"] = published

	v := NewValidator()
	v.ValidateRequired(title, "A title is required.")
	v.ValidateRequired(body, "Post content is required.")
	v.ValidateMaxLength(title, "Title", 255)
	v.ValidateMaxLength(excerpt, "Excerpt", 500)
	if v.HasErrors() {
		data["Errors"] = v.Errors()
		app.render(w, r, "blog_create", editorTitle(post), data)
		return
	}

	if post != nil {
		slug, err := app.UpdatePost(r.Context(), post, title, models.TrustedHTML(body), excerpt, published)
		if err != nil {
			AppLogger.Errorw("failed to update post", "post_id", post.ID, "err", err)
			data["Errors"] = []string{"A database error occurred. Please try again later."}
			app.render(w, r, "blog_create", editorTitle(post), data)
			return
		}
		data["Success"] = "Post updated successfully."
		data["Slug"] = slug
		app.render(w, r, "blog_create", editorTitle(post), data)
		return
	}

	userID, _ := sess.UserID()
	id, slug, err := app.CreatePost(r.Context(), userID, title, models.TrustedHTML(body), excerpt, published)
	if err != nil {
		AppLogger.Errorw("failed to create post", "err", err)
		data["Errors"] = []string{"A database error occurred. Please try again later."}
		app.render(w, r, "blog_create", editorTitle(post), data)
		return
	}

	if published {
		http.Redirect(w, r, app.path("/blog-post")+"?slug="+url.QueryEscape(slug), http.StatusSeeOther)
		return
	}
	// Drafts stay in the editor so writing can continue.
	http.Redirect(w, r, app.path("/blog-create")+"?edit="+strconv.FormatInt(id, 10)+"&saved=1", http.StatusSeeOther)
}

func editorTitle(post *models.BlogPost) string {
	if post != nil {
		return "Edit Post"
	}
	return "New Post"
}

func editorFormData(post *models.BlogPost) map[string]any {
	data := map[string]any{
		"PostID":       int64(0),
		"TitleField":   "",
		"BodyField":    "",
		"ExcerptField": "",
		"Published":    false,
	}
	if post != nil {
		data["PostID"] = post.ID
		data["TitleField"] = post.Title
		data["BodyField"] = string(post.Body)
		data["ExcerptField"] = post.Excerpt
		data["Published"] = post.IsPublished
	}
	return data
}

// handleTogglePost flips a post's publish flag. Unlike the rest of the
// admin links this is a POST carrying the regular session CSRF token,
// so the flip can't be triggered from a crafted GET link.
func (app *App) handleTogglePost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, app.path("/blog"), http.StatusSeeOther)
		return
	}

	if err := app.TogglePublished(r.Context(), postID); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Redirect(w, r, app.path("/blog"), http.StatusSeeOther)
			return
		}
		AppLogger.Errorw("failed to toggle post", "post_id", postID, "err", err)
		http.Error(w, "A database error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, app.path("/blog")+"?toggled=1", http.StatusSeeOther)
}
