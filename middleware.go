package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionFromRequest returns the session loaded by SessionMiddleware.
func sessionFromRequest(r *http.Request) *Session {
	sess, _ := r.Context().Value(sessionContextKey).(*Session)
	return sess
}

// SessionMiddleware resumes (or creates) the session for every request,
// rotating the session identifier when it is stale, and passes the
// session through the request context instead of global state.
func (app *App) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := app.startSession(r)
		if err != nil {
			AppLogger.Errorw("failed to start session", "path", r.URL.Path, "err", err)
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		// Make sure every visitor has a CSRF token before any form renders.
		sess.CSRFToken()

		if sess.dirty {
			if err := sess.Save(r, w); err != nil {
				AppLogger.Errorw("failed to save session", "path", r.URL.Path, "err", err)
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin redirects guests to the login page, carrying the
// originally requested path so login can return them there.
func (app *App) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromRequest(r)
		if sess == nil || !sess.IsLoggedIn() {
			http.Redirect(w, r, app.path("/login")+"?redirect="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAdmin turns non-admins away from admin-only routes. Guests go
// to login; authenticated non-admins are bounced to the home page with
// no detail beyond a generic flag.
func (app *App) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return app.RequireLogin(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromRequest(r)
		if !sess.IsAdmin() {
			http.Redirect(w, r, app.path("/index")+"?error=unauthorized", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

// CSRFMiddleware verifies the per-session anti-forgery token on every
// state-mutating submission before any side effect runs. Failures get a
// generic rejection so the response can't be used as an oracle.
func (app *App) CSRFMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodDelete {
			sess := sessionFromRequest(r)
			if sess == nil || !sess.VerifyCSRF(r.FormValue(csrfFieldName)) {
				AppLogger.Warnw("CSRF token mismatch", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				http.Error(w, "Invalid request. Please try again.", http.StatusForbidden)
				return
			}
		}
		next(w, r)
	}
}

// responseWriterWrapper captures the status code for request logging.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (app *App) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		AppLogger.Infow("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", wrapper.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func (app *App) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				AppLogger.Errorw("panic recovered in HTTP handler",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", fmt.Sprintf("%v", err),
				)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
