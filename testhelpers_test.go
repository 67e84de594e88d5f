package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"goldengirlWebsite/internal/models"
)

var testDBCounter int64

// newTestApp builds an App backed by a fresh in-memory SQLite database.
// Each database gets a unique name so parallel tests don't share state.
func newTestApp(t *testing.T) *App {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := openDB("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	config := &Config{
		DBName:        "test",
		SessionSecret: []byte("test-secret-test-secret-test-secret!"),
		SessionMaxAge: 86400,
		BcryptCost:    bcrypt.MinCost,
		Port:          "0",
		LogLevel:      "error",
		Environment:   "test",
	}

	app := NewApp(config, db)
	require.NoError(t, app.initDatabase())
	return app
}

// createTestUser inserts an account directly, bypassing registration so
// tests can create admins and deactivated users.
func createTestUser(t *testing.T, app *App, email, password, role string, active bool) int64 {
	t.Helper()

	hash, err := app.HashPassword(password)
	require.NoError(t, err)

	isActive := 0
	if active {
		isActive = 1
	}
	res, err := app.DB.Exec(`
		INSERT INTO users (first_name, last_name, email, password_hash, role, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`, "Test", "User", email, hash, role, isActive)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func createTestPost(t *testing.T, app *App, authorID int64, title string, published bool) (int64, string) {
	t.Helper()

	id, slug, err := app.CreatePost(context.Background(), authorID, title,
		models.TrustedHTML("<p>body</p>"), "excerpt", published)
	require.NoError(t, err)
	return id, slug
}

// browser wraps a test server client with a cookie jar so a sequence of
// requests behaves like one visitor's session.
type browser struct {
	t      *testing.T
	ts     *httptest.Server
	client *http.Client
}

func newBrowser(t *testing.T, app *App) *browser {
	t.Helper()

	ts := httptest.NewServer(app.Routes())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:  t,
		ts: ts,
		client: &http.Client{
			Jar:     jar,
			Timeout: 5 * time.Second,
		},
	}
}

// get fetches a path following redirects and returns the final response
// body.
func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()

	resp, err := b.client.Get(b.ts.URL + path)
	require.NoError(b.t, err)
	return resp, readBody(b.t, resp)
}

// postForm submits a form following redirects.
func (b *browser) postForm(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()

	resp, err := b.client.PostForm(b.ts.URL+path, form)
	require.NoError(b.t, err)
	return resp, readBody(b.t, resp)
}

// postFormNoRedirect submits a form and returns the immediate response
// so redirect targets can be asserted.
func (b *browser) postFormNoRedirect(path string, form url.Values) *http.Response {
	b.t.Helper()

	req, err := http.NewRequest(http.MethodPost, b.ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	noFollow := &http.Client{
		Jar:     b.client.Jar,
		Timeout: 5 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := noFollow.Do(req)
	require.NoError(b.t, err)
	resp.Body.Close()
	return resp
}

var csrfTokenPattern = regexp.MustCompile(`name="csrf_token" value="([0-9a-f]+)"`)

// csrfToken fetches a page carrying the hidden token field and extracts
// the session's token.
func (b *browser) csrfToken(path string) string {
	b.t.Helper()

	_, body := b.get(path)
	match := csrfTokenPattern.FindStringSubmatch(body)
	require.NotNil(b.t, match, "page %s should carry a csrf token", path)
	return match[1]
}

// logIn registers nothing; it drives the real login form.
func (b *browser) logIn(email, password string) {
	b.t.Helper()

	token := b.csrfToken("/login")
	resp, body := b.postForm("/login", url.Values{
		"csrf_token": {token},
		"email":      {email},
		"password":   {password},
	})
	require.Equal(b.t, http.StatusOK, resp.StatusCode)
	require.Contains(b.t, body, "Sign Out", "login should end on an authenticated page")
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func countRows(t *testing.T, app *App, table string) int {
	t.Helper()

	var n int
	require.NoError(t, app.DB.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
