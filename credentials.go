package main

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt hash at the configured cost.
func (app *App) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), app.Config.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a password against a stored hash. bcrypt's
// comparison is timing-safe.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether a stored hash was produced with a lower
// cost factor than current policy. Triggered on successful login so
// hashes upgrade transparently after a cost increase.
func (app *App) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost < app.Config.BcryptCost
}
