package main

import (
	"html/template"
	"net/http"
	"time"

	"goldengirlWebsite/internal/models"
)

// Markup is deliberately minimal; the visual design lives in static
// assets and is not part of this codebase's responsibility.

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} | Golden Girl</title>
<link rel="stylesheet" href="{{.BasePath}}/static/css/style.css">
</head>
<body>
<header class="site-header">
<nav>
<a href="{{.BasePath}}/index">Home</a>
<a href="{{.BasePath}}/about">About</a>
<a href="{{.BasePath}}/blog">Blog</a>
<a href="{{.BasePath}}/schedule">Schedule</a>
{{if .LoggedIn}}
<a href="{{.BasePath}}/account">Hi, {{.FirstName}}</a>
<a href="{{.BasePath}}/logout">Sign Out</a>
{{else}}
<a href="{{.BasePath}}/login">Sign In</a>
<a href="{{.BasePath}}/register">Join</a>
{{end}}
</nav>
</header>
<main>
{{range .Errors}}<div class="alert alert-error" role="alert">{{.}}</div>{{end}}
{{if .Success}}<div class="alert alert-success" role="alert">{{.Success}}</div>{{end}}
{{template "content" .}}
</main>
<footer class="site-footer"><p>&copy; Golden Girl &middot; Real Estate &amp; Insurance</p></footer>
</body>
</html>{{end}}`

var pageTemplates = map[string]string{
	"home": `{{define "content"}}
<section class="hero">
<h1>Your Next Chapter Starts Here</h1>
<p>Navigate real estate and insurance with confidence, clarity, and a steady hand by your side.</p>
<a class="btn" href="{{.BasePath}}/schedule">Book a Free Call</a>
</section>
<section id="services">
<h2>Services Designed for You</h2>
<div class="card"><h3>Real Estate Services</h3><p>Buying, selling, or figuring out what to do with the family home.</p></div>
<div class="card"><h3>Life Insurance</h3><p>Protecting yourself and your family's future.</p></div>
<div class="card"><h3>Free Consultation</h3><p>Not sure yet? Let's just talk.</p></div>
</section>
{{end}}`,

	"about": `{{define "content"}}
<section class="page-hero"><h1>About Me</h1><p>A friend who happens to know real estate and insurance.</p></section>
<section>
<ul class="credentials">
<li>Licensed Real Estate Agent</li>
<li>Certified Life Insurance Specialist</li>
</ul>
<a class="btn" href="{{.BasePath}}/schedule">Schedule a Consultation</a>
</section>
{{end}}`,

	"login": `{{define "content"}}
<section class="page-hero"><h1>Sign In</h1></section>
<form method="POST" action="{{.BasePath}}/login{{with .Redirect}}?redirect={{.}}{{end}}" novalidate>
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<label for="email">Email Address</label>
<input type="email" id="email" name="email" autocomplete="email" required value="{{.Email}}">
<label for="password">Password</label>
<input type="password" id="password" name="password" autocomplete="current-password" required>
<button type="submit">Sign In</button>
</form>
<p>Don't have an account? <a href="{{.BasePath}}/register">Create one for free</a></p>
{{end}}`,

	"register": `{{define "content"}}
<section class="page-hero"><h1>Create Your Account</h1></section>
<form method="POST" action="{{.BasePath}}/register" novalidate>
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<label for="first_name">First Name</label>
<input type="text" id="first_name" name="first_name" maxlength="80" required value="{{.FirstNameField}}">
<label for="last_name">Last Name</label>
<input type="text" id="last_name" name="last_name" maxlength="80" required value="{{.LastNameField}}">
<label for="email">Email Address</label>
<input type="email" id="email" name="email" required value="{{.Email}}">
<label for="password">Password</label>
<input type="password" id="password" name="password" autocomplete="new-password" required>
<small>At least 8 characters with uppercase, a number, and a special character.</small>
<label for="confirm_password">Confirm Password</label>
<input type="password" id="confirm_password" name="confirm_password" autocomplete="new-password" required>
<button type="submit">Create My Account</button>
</form>
<p>Already have an account? <a href="{{.BasePath}}/login">Sign In</a></p>
{{end}}`,

	"account": `{{define "content"}}
<section class="page-hero"><h1>Hi, {{.FirstName}}</h1><p>Here's your Golden Girl account dashboard.</p></section>
<section id="requests">
<h2>My Service Requests</h2>
{{if .Appointments}}
{{range .Appointments}}
<div class="appt-item">
<div class="appt-services">{{.Services}}</div>
{{with .Notes}}<div class="appt-notes">{{.}}</div>{{end}}
<div class="appt-date">Submitted {{formatDate .CreatedAt}}</div>
<span class="badge status-{{.Status}}">{{.Status}}</span>
</div>
{{end}}
{{else}}
<p>No requests yet. When you schedule a consultation or service, it will appear here.</p>
{{end}}
<a class="btn" href="{{.BasePath}}/schedule">+ New Request</a>
{{if .IsAdmin}}
<h3>Admin</h3>
<a href="{{.BasePath}}/blog-create">New Blog Post</a>
<a href="{{.BasePath}}/blog">Manage Blog</a>
{{end}}
</section>
{{end}}`,

	"schedule": `{{define "content"}}
<section class="page-hero"><h1>Schedule Your Consultation</h1><p>Tell us what you need, then pick a time that works for you.</p></section>
<section>
{{if not .LoggedIn}}
<div class="alert alert-info">Please <a href="{{.BasePath}}/login?redirect={{.BasePath}}/schedule">sign in</a>
or <a href="{{.BasePath}}/register">create a free account</a> to save your service request.</div>
{{end}}
<form method="POST" action="{{.BasePath}}/schedule" novalidate>
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<fieldset>
<legend>Select Services</legend>
{{range .AllowedServices}}
<label><input type="checkbox" name="services" value="{{.}}" {{if index $.Checked .}}checked{{end}}> {{.}}</label>
{{end}}
</fieldset>
<label for="notes">Tell Us More (optional)</label>
<textarea id="notes" name="notes" maxlength="2000">{{.Notes}}</textarea>
{{if .LoggedIn}}
<button type="submit">Save My Request &amp; Book a Time</button>
{{else}}
<a class="btn" href="{{.BasePath}}/login?redirect={{.BasePath}}/schedule">Sign In to Continue</a>
{{end}}
</form>
<div class="calendly-wrap">
<div class="calendly-inline-widget" data-url="https://calendly.com/golden-girl/consultation"></div>
<script async src="https://assets.calendly.com/assets/external/widget.js"></script>
</div>
</section>
{{end}}`,

	"blog": `{{define "content"}}
<section class="page-hero"><h1>The Golden Girl Blog</h1></section>
{{if .IsAdmin}}
<div class="alert alert-info">Admin view: you can see drafts and manage posts.
<a class="btn" href="{{.BasePath}}/blog-create">+ New Post</a></div>
{{end}}
{{if .Posts}}
<div class="blog-grid">
{{range .Posts}}
<article class="blog-card">
<p class="post-date">{{formatDate .CreatedAt}}
{{if $.IsAdmin}}<span class="badge">{{if .IsPublished}}Published{{else}}Draft{{end}}</span>{{end}}
</p>
<h3><a href="{{$.BasePath}}/blog-post?slug={{.Slug}}">{{.Title}}</a></h3>
<p>{{with .Excerpt}}{{.}}{{else}}Read more about this topic...{{end}}</p>
<small>By {{.AuthorName}}</small>
{{if $.IsAdmin}}
<div class="admin-actions">
<a href="{{$.BasePath}}/blog-create?edit={{.ID}}">Edit</a>
<form method="POST" action="{{$.BasePath}}/admin/toggle-post">
<input type="hidden" name="csrf_token" value="{{$.CSRFToken}}">
<input type="hidden" name="id" value="{{.ID}}">
<button type="submit">{{if .IsPublished}}Unpublish{{else}}Publish{{end}}</button>
</form>
</div>
{{end}}
</article>
{{end}}
</div>
{{else}}
<p>No posts yet. Check back soon for articles, tips, and stories.</p>
{{end}}
{{end}}`,

	"blog_post": `{{define "content"}}
<section class="page-hero">
{{if not .Post.IsPublished}}<span class="badge badge-draft">Draft (not visible to the public)</span>{{end}}
<h1>{{.Post.Title}}</h1>
<p>By {{.Post.AuthorName}} &middot; {{formatDate .Post.CreatedAt}}</p>
</section>
{{if .IsAdmin}}
<div class="admin-actions">
<a href="{{.BasePath}}/blog-create?edit={{.Post.ID}}">Edit Post</a>
<form method="POST" action="{{.BasePath}}/admin/toggle-post">
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<input type="hidden" name="id" value="{{.Post.ID}}">
<button type="submit">{{if .Post.IsPublished}}Unpublish{{else}}Publish{{end}}</button>
</form>
</div>
{{end}}
<div class="post-content">{{trustedHTML .Post.Body}}</div>
<p><a href="{{.BasePath}}/blog">&larr; Back to Blog</a></p>
{{end}}`,

	"blog_create": `{{define "content"}}
<section class="page-hero"><h1>{{if .PostID}}Edit Post{{else}}New Blog Post{{end}}</h1></section>
<form method="POST" action="{{.BasePath}}/blog-create{{with .PostID}}?edit={{.}}{{end}}" novalidate>
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
{{with .PostID}}<input type="hidden" name="post_id" value="{{.}}">{{end}}
<label for="title">Post Title</label>
<input type="text" id="title" name="title" maxlength="255" required value="{{.TitleField}}">
<label for="excerpt">Excerpt</label>
<textarea id="excerpt" name="excerpt" maxlength="500">{{.ExcerptField}}</textarea>
<label for="body">Post Content</label>
<textarea id="body" name="body" required>{{.BodyField}}</textarea>
<small>Basic HTML tags are supported.</small>
<label><input type="checkbox" name="is_published" value="1" {{if .Published}}checked{{end}}> Publish this post</label>
<button type="submit">{{if .PostID}}Save Changes{{else}}Create Post{{end}}</button>
<a href="{{.BasePath}}/blog">Cancel</a>
</form>
{{end}}`,

	"not_found": `{{define "content"}}
<section class="page-hero"><h1>Post Not Found</h1></section>
<p>This post may have been removed or the link is incorrect.</p>
<p><a href="{{.BasePath}}/blog">Back to Blog</a></p>
{{end}}`,
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		// trustedHTML is the single point where admin-entered post
		// bodies cross into unescaped output.
		"trustedHTML": func(body models.TrustedHTML) template.HTML {
			return template.HTML(body)
		},
	}
}

func loadTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template, len(pageTemplates))
	for name, content := range pageTemplates {
		t := template.Must(template.New(name).Funcs(templateFuncs()).Parse(layoutTemplate))
		template.Must(t.Parse(content))
		templates[name] = t
	}
	return templates
}

// render executes a page template, filling in the common fields every
// page needs from the request's session.
func (app *App) render(w http.ResponseWriter, r *http.Request, name, title string, data map[string]any) {
	tmpl, ok := app.Templates[name]
	if !ok {
		AppLogger.Errorw("unknown template", "name", name)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	data["Title"] = title
	data["BasePath"] = app.Config.BasePath
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = []string(nil)
	}
	if _, ok := data["Success"]; !ok {
		data["Success"] = ""
	}
	if sess := sessionFromRequest(r); sess != nil {
		data["LoggedIn"] = sess.IsLoggedIn()
		data["IsAdmin"] = sess.IsAdmin()
		data["FirstName"] = sess.FirstName()
		data["CSRFToken"] = sess.CSRFToken()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		AppLogger.Errorw("failed to execute template", "name", name, "err", err)
	}
}
