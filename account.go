package main

import "net/http"

// handleAccount shows the signed-in user their service requests,
// newest first. Guests never reach this handler; RequireLogin bounces
// them to the sign-in page.
func (app *App) handleAccount(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	userID, _ := sess.UserID()

	appointments, err := app.GetAppointmentsByUser(r.Context(), userID)
	if err != nil {
		AppLogger.Errorw("failed to load appointments", "user_id", userID, "err", err)
		app.render(w, r, "account", "My Account", map[string]any{
			"Errors": []string{"A database error occurred. Please try again later."},
		})
		return
	}

	app.render(w, r, "account", "My Account", map[string]any{
		"Appointments": appointments,
	})
}
