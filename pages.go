package main

import "net/http"

func (app *App) handleHome(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if r.URL.Query().Get("error") == "unauthorized" {
		data["Errors"] = []string{"You don't have permission to view that page."}
	}
	app.render(w, r, "home", "Home", data)
}

func (app *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "about", "About Me", nil)
}
