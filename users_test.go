package main

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"goldengirlWebsite/internal/models"
)

func TestCreateUserAndFetch(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	hash, err := app.HashPassword("Password1!")
	require.NoError(t, err)

	id, err := app.CreateUser(ctx, "Goldie", "Girl", "goldie@example.com", hash)
	require.NoError(t, err)
	assert.Positive(t, id)

	user, err := app.GetUserByEmail(ctx, "goldie@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, "Goldie Girl", user.FullName())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.CreateUser(ctx, "First", "User", "dup@example.com", "hash")
	require.NoError(t, err)

	_, err = app.CreateUser(ctx, "Second", "User", "dup@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	app := newTestApp(t)

	_, err := app.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	createTestUser(t, app, "user@example.com", "Password1!", models.RoleUser, true)

	user, err := app.Authenticate(ctx, "user@example.com", "Password1!")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)

	_, err = app.Authenticate(ctx, "user@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = app.Authenticate(ctx, "unknown@example.com", "Password1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials,
		"unknown email and wrong password must be indistinguishable")
}

func TestAuthenticateDeactivatedAccount(t *testing.T) {
	app := newTestApp(t)
	createTestUser(t, app, "gone@example.com", "Password1!", models.RoleUser, false)

	_, err := app.Authenticate(context.Background(), "gone@example.com", "Password1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUpgradesHash(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	weak, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = app.DB.Exec(`
		INSERT INTO users (first_name, last_name, email, password_hash, role, is_active)
		VALUES ('Old', 'Hash', 'old@example.com', ?, 'user', 1)`, string(weak))
	require.NoError(t, err)

	app.Config.BcryptCost = bcrypt.MinCost + 1
	user, err := app.Authenticate(ctx, "old@example.com", "Password1!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	stored, err := app.GetUserByEmail(ctx, "old@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
	assert.True(t, CheckPassword(stored.PasswordHash, "Password1!"))
}

func TestGetUserByEmailQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := &App{DB: sqlx.NewDb(db, "sqlmock"), Config: &Config{BcryptCost: bcrypt.MinCost}}

	mock.ExpectQuery("SELECT id, first_name").
		WillReturnError(errors.New("connection refused"))

	_, err = app.GetUserByEmail(context.Background(), "a@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "infrastructure failures must not read as missing accounts")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateStorageFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := &App{DB: sqlx.NewDb(db, "sqlmock"), Config: &Config{BcryptCost: bcrypt.MinCost}}

	mock.ExpectQuery("SELECT id, first_name").
		WillReturnError(errors.New("connection refused"))

	_, err = app.Authenticate(context.Background(), "a@example.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials,
		"storage failures must not be reported as bad credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}
