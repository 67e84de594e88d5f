package main

import (
	"net/http"
	"net/url"
	"strings"

	"goldengirlWebsite/internal/models"
)

// handleSchedule serves the service-request form alongside the embedded
// scheduling widget. The GET page is public; submitting requires a
// signed-in user so the request can be attached to their account.
func (app *App) handleSchedule(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	data := map[string]any{
		"AllowedServices": models.AllowedServices,
		"Checked":         map[string]bool{},
		"Notes":           "",
	}

	if r.Method != http.MethodPost {
		app.render(w, r, "schedule", "Schedule a Consultation", data)
		return
	}

	// Login is checked before the CSRF token so guests are sent to
	// sign in rather than shown a forgery rejection.
	if !sess.IsLoggedIn() {
		http.Redirect(w, r, app.path("/login")+"?redirect="+url.QueryEscape(app.path("/schedule")), http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if !sess.VerifyCSRF(r.FormValue(csrfFieldName)) {
		http.Error(w, "Invalid request. Please try again.", http.StatusForbidden)
		return
	}

	// Only values from the known service list are accepted.
	selected := filterServices(r.Form["services"])
	notes := strings.TrimSpace(r.FormValue("notes"))

	checked := map[string]bool{}
	for _, s := range selected {
		checked[s] = true
	}
	data["Checked"] = checked
	data["Notes"] = notes

	v := NewValidator()
	if len(selected) == 0 {
		v.AddError("Please select at least one service.")
	}
	v.ValidateMaxLength(notes, "Your message", 2000)

	if v.HasErrors() {
		data["Errors"] = v.Errors()
		app.render(w, r, "schedule", "Schedule a Consultation", data)
		return
	}

	userID, _ := sess.UserID()
	if _, err := app.CreateAppointment(r.Context(), userID, selected, notes); err != nil {
		AppLogger.Errorw("failed to save service request", "user_id", userID, "err", err)
		data["Errors"] = []string{"A database error occurred. Please try again later."}
		app.render(w, r, "schedule", "Schedule a Consultation", data)
		return
	}

	data["Checked"] = map[string]bool{}
	data["Notes"] = ""
	data["Success"] = "Your service request has been saved! Please use the calendar below to book your appointment time."
	app.render(w, r, "schedule", "Schedule a Consultation", data)
}
