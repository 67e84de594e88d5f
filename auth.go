package main

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
)

// handleLogin serves the sign-in form and processes submissions.
// Failed attempts are throttled per session: after 5 consecutive
// failures the session is locked out for 15 minutes and attempts are
// rejected before any credential lookup.
func (app *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	// Already signed in: nothing to do here.
	if sess.IsLoggedIn() {
		http.Redirect(w, r, app.path("/account"), http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Email":    "",
		"Redirect": r.URL.Query().Get("redirect"),
	}
	if r.URL.Query().Has("registered") {
		data["Success"] = "Account created! Please sign in below."
	}

	if r.Method != http.MethodPost {
		app.render(w, r, "login", "Sign In", data)
		return
	}

	if locked, remaining := sess.LockedOut(); locked {
		minutes := int(math.Ceil(remaining.Minutes()))
		data["Errors"] = []string{fmt.Sprintf("Too many failed attempts. Please wait %d minute(s) before trying again.", minutes)}
		app.render(w, r, "login", "Sign In", data)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	data["Email"] = email

	v := NewValidator()
	v.ValidateRequired(email, "Please enter your email and password.")
	v.ValidateRequired(password, "Please enter your email and password.")
	if !v.HasErrors() {
		v.ValidateEmail(email)
	}
	if v.HasErrors() {
		data["Errors"] = v.Errors()[:1]
		app.render(w, r, "login", "Sign In", data)
		return
	}

	user, err := app.Authenticate(r.Context(), email, password)
	if errors.Is(err, ErrInvalidCredentials) {
		remaining := sess.RecordLoginFailure()
		if err := sess.Save(r, w); err != nil {
			AppLogger.Errorw("failed to save session", "err", err)
		}
		if remaining == 0 {
			data["Errors"] = []string{"Too many failed attempts. Please wait 15 minutes before trying again."}
		} else {
			data["Errors"] = []string{fmt.Sprintf("Incorrect email or password. %d attempt(s) remaining.", remaining)}
		}
		app.render(w, r, "login", "Sign In", data)
		return
	}
	if err != nil {
		AppLogger.Errorw("login failed", "err", err)
		data["Errors"] = []string{"A database error occurred. Please try again later."}
		app.render(w, r, "login", "Sign In", data)
		return
	}

	sess.LogIn(user)
	if err := sess.Save(r, w); err != nil {
		AppLogger.Errorw("failed to save session after login", "err", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	AppLogger.Infow("user logged in", "user_id", user.ID, "role", user.Role)
	http.Redirect(w, r, app.safeRedirectTarget(r.URL.Query().Get("redirect")), http.StatusSeeOther)
}

// safeRedirectTarget only honors post-login redirect targets that stay
// under this site's base path, closing the open-redirect hole. "/\" is
// rejected too: browsers normalize the backslash, turning it into a
// protocol-relative URL.
func (app *App) safeRedirectTarget(target string) string {
	if target == "" || !strings.HasPrefix(target, app.Config.BasePath+"/") {
		return app.path("/account")
	}
	rest := strings.TrimPrefix(target, app.Config.BasePath)
	if strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, `/\`) {
		return app.path("/account")
	}
	return target
}

// handleRegister serves the registration form and creates accounts.
func (app *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	if sess.IsLoggedIn() {
		http.Redirect(w, r, app.path("/account"), http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"FirstNameField": "",
		"LastNameField":  "",
		"Email":          "",
	}

	if r.Method != http.MethodPost {
		app.render(w, r, "register", "Create Account", data)
		return
	}

	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirm_password")

	data["FirstNameField"] = firstName
	data["LastNameField"] = lastName
	data["Email"] = email

	v := NewValidator()
	v.ValidateRequired(firstName, "First name is required.")
	v.ValidateRequired(lastName, "Last name is required.")
	v.ValidateMaxLength(firstName, "First name", 80)
	v.ValidateMaxLength(lastName, "Last name", 80)
	v.ValidateRequired(email, "Email address is required.")
	v.ValidateEmail(email)
	v.ValidatePassword(password)
	v.ValidateMatch(password, confirmPassword, "Passwords do not match.")

	if v.HasErrors() {
		data["Errors"] = v.Errors()
		app.render(w, r, "register", "Create Account", data)
		return
	}

	hash, err := app.HashPassword(password)
	if err != nil {
		AppLogger.Errorw("failed to hash password", "err", err)
		data["Errors"] = []string{"Something went wrong. Please try again."}
		app.render(w, r, "register", "Create Account", data)
		return
	}

	_, err = app.CreateUser(r.Context(), firstName, lastName, email, hash)
	if errors.Is(err, ErrEmailTaken) {
		data["Errors"] = []string{"An account with that email already exists."}
		app.render(w, r, "register", "Create Account", data)
		return
	}
	if err != nil {
		AppLogger.Errorw("failed to create user", "err", err)
		data["Errors"] = []string{"A database error occurred. Please try again later."}
		app.render(w, r, "register", "Create Account", data)
		return
	}

	http.Redirect(w, r, app.path("/login")+"?registered=1", http.StatusSeeOther)
}

// handleLogout destroys the session and expires the cookie.
func (app *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	if err := sess.Destroy(r, w); err != nil {
		AppLogger.Errorw("failed to destroy session", "err", err)
	}
	http.Redirect(w, r, app.path("/index"), http.StatusSeeOther)
}
