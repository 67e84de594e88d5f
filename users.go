package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"goldengirlWebsite/internal/models"
)

// GetUserByEmail looks up an account by email. Returns ErrNotFound when
// no account exists.
func (app *App) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := app.DB.GetContext(ctx, &user, `
		SELECT id, first_name, last_name, email, password_hash, role, is_active
		FROM users WHERE email = ? LIMIT 1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new account with the user role. Returns
// ErrEmailTaken when the email is already registered, whether found by
// the pre-check or by losing the insert race to the unique constraint.
func (app *App) CreateUser(ctx context.Context, firstName, lastName, email, passwordHash string) (int64, error) {
	var existing int64
	err := app.DB.GetContext(ctx, &existing, `SELECT id FROM users WHERE email = ? LIMIT 1`, email)
	if err == nil {
		return 0, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checking email uniqueness: %w", err)
	}

	res, err := app.DB.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, role, is_active)
		VALUES (?, ?, ?, ?, ?, 1)`, firstName, lastName, email, passwordHash, models.RoleUser)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new user id: %w", err)
	}

	AppLogger.Infow("user registered", "user_id", id, "email", email)
	return id, nil
}

// UpdatePasswordHash replaces a stored hash, used for rehash-on-upgrade
// after a successful login against an outdated cost factor.
func (app *App) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	_, err := app.DB.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("updating password hash: %w", err)
	}
	AppLogger.Infow("password hash upgraded", "user_id", userID)
	return nil
}

// Authenticate verifies an email/password pair against the store.
// The same ErrInvalidCredentials is returned for unknown email, wrong
// password, and deactivated accounts so responses never reveal which
// part of the pair was wrong.
func (app *App) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := app.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if app.NeedsRehash(user.PasswordHash) {
		if newHash, err := app.HashPassword(password); err == nil {
			if err := app.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
				AppLogger.Errorw("failed to upgrade password hash", "user_id", user.ID, "err", err)
			} else {
				user.PasswordHash = newHash
			}
		}
	}

	return user, nil
}
