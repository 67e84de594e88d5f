package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"goldengirlWebsite/internal/models"
)

const (
	sessionName = "gg-session"

	// Session identifier is rotated this often to limit fixation windows,
	// and immediately on privilege change (login).
	sessionRotationInterval = 5 * time.Minute

	csrfFieldName = "csrf_token"

	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

// Session value keys. gorilla/sessions gob-encodes values, so only
// strings and fixed-size integers are stored.
const (
	keySessionID     = "sid"
	keyLastRotation  = "last_rotation"
	keyUserID        = "user_id"
	keyUserEmail     = "user_email"
	keyUserFirstName = "user_first_name"
	keyUserRole      = "user_role"
	keyCSRFToken     = "csrf_token"
	keyLoginAttempts = "login_attempts"
	keyLockoutUntil  = "login_block_until"
)

// Session is a typed wrapper over the cookie-backed session record.
// It is loaded once per request by SessionMiddleware and passed through
// the request context rather than accessed as global state.
type Session struct {
	s *sessions.Session

	// dirty marks state the middleware must persist before the handler
	// runs (rotation, first CSRF token). Handler mutations call Save
	// themselves.
	dirty bool
}

// startSession resumes or creates the session for this request and
// rotates the session identifier if it is stale or missing.
func (app *App) startSession(r *http.Request) (*Session, error) {
	s, err := app.SessionStore.Get(r, sessionName)
	if s == nil {
		return nil, err
	}
	if err != nil {
		// Undecodable cookie, e.g. tampering or a rotated secret. The
		// store still hands back a usable fresh session, so clear it
		// and carry on; the visitor just starts over.
		AppLogger.Warnw("resetting undecodable session cookie", "err", err)
		for k := range s.Values {
			delete(s.Values, k)
		}
	}

	sess := &Session{s: s}
	sess.rotateIfStale()
	return sess, nil
}

func (sess *Session) rotateIfStale() {
	last, ok := sess.s.Values[keyLastRotation].(int64)
	if ok && time.Since(time.Unix(last, 0)) <= sessionRotationInterval {
		return
	}
	sess.rotate()
}

// rotate issues a fresh session identifier while preserving all other
// session state, including the CSRF token.
func (sess *Session) rotate() {
	sess.s.Values[keySessionID] = uuid.NewString()
	sess.s.Values[keyLastRotation] = time.Now().Unix()
	sess.dirty = true
}

// Save writes the session cookie. Must be called after any mutation.
func (sess *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return sess.s.Save(r, w)
}

// Destroy clears all session state and expires the client-side cookie.
func (sess *Session) Destroy(r *http.Request, w http.ResponseWriter) error {
	for k := range sess.s.Values {
		delete(sess.s.Values, k)
	}
	sess.s.Options.MaxAge = -1
	return sess.s.Save(r, w)
}

// LogIn records the authenticated user in the session. The session
// identifier is rotated immediately on privilege change.
func (sess *Session) LogIn(user *models.User) {
	sess.rotate()
	sess.s.Values[keyUserID] = user.ID
	sess.s.Values[keyUserEmail] = user.Email
	sess.s.Values[keyUserFirstName] = user.FirstName
	sess.s.Values[keyUserRole] = user.Role
	sess.s.Values[keyLoginAttempts] = 0
	sess.s.Values[keyLockoutUntil] = int64(0)
}

func (sess *Session) UserID() (int64, bool) {
	id, ok := sess.s.Values[keyUserID].(int64)
	return id, ok
}

func (sess *Session) FirstName() string {
	name, _ := sess.s.Values[keyUserFirstName].(string)
	return name
}

func (sess *Session) Email() string {
	email, _ := sess.s.Values[keyUserEmail].(string)
	return email
}

func (sess *Session) Role() string {
	role, _ := sess.s.Values[keyUserRole].(string)
	return role
}

func (sess *Session) IsLoggedIn() bool {
	_, ok := sess.UserID()
	return ok
}

func (sess *Session) IsAdmin() bool {
	return sess.Role() == models.RoleAdmin
}

// CSRFToken returns the per-session anti-forgery token, generating and
// storing one on first use.
func (sess *Session) CSRFToken() string {
	if token, ok := sess.s.Values[keyCSRFToken].(string); ok && token != "" {
		return token
	}
	token, err := GenerateSecureToken(32)
	if err != nil {
		return ""
	}
	sess.s.Values[keyCSRFToken] = token
	sess.dirty = true
	return token
}

// VerifyCSRF compares a submitted token against the session's current
// token in constant time. Empty and stale tokens always fail.
func (sess *Session) VerifyCSRF(candidate string) bool {
	token, ok := sess.s.Values[keyCSRFToken].(string)
	if !ok || token == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(candidate)) == 1
}

// Login throttling state, scoped to the session. The per-IP rate
// limiter covers clients that clear their cookies.

func (sess *Session) LoginAttempts() int {
	attempts, _ := sess.s.Values[keyLoginAttempts].(int)
	return attempts
}

// RecordLoginFailure increments the failure counter and starts the
// lockout window once the threshold is reached. Returns the number of
// attempts remaining before lockout.
func (sess *Session) RecordLoginFailure() int {
	attempts := sess.LoginAttempts() + 1
	sess.s.Values[keyLoginAttempts] = attempts
	if attempts >= maxLoginAttempts {
		sess.s.Values[keyLockoutUntil] = time.Now().Add(lockoutDuration).Unix()
		return 0
	}
	return maxLoginAttempts - attempts
}

// LockedOut reports whether the session is inside a lockout window and
// how long remains.
func (sess *Session) LockedOut() (bool, time.Duration) {
	until, ok := sess.s.Values[keyLockoutUntil].(int64)
	if !ok || until == 0 {
		return false, 0
	}
	remaining := time.Until(time.Unix(until, 0))
	if remaining <= 0 {
		return false, 0
	}
	return true, remaining
}

// GenerateSecureToken returns length cryptographically random bytes as hex.
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
