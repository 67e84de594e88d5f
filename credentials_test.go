package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordAndCheck(t *testing.T) {
	app := newTestApp(t)

	hash, err := app.HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)

	assert.True(t, CheckPassword(hash, "Sup3r$ecret"))
	assert.False(t, CheckPassword(hash, "sup3r$ecret"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	app := newTestApp(t)

	a, err := app.HashPassword("same-password")
	require.NoError(t, err)
	b, err := app.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCheckPasswordBadHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "whatever"))
}

func TestNeedsRehash(t *testing.T) {
	app := newTestApp(t)
	app.Config.BcryptCost = bcrypt.MinCost + 1

	weak, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, app.NeedsRehash(string(weak)))

	current, err := app.HashPassword("pw")
	require.NoError(t, err)
	assert.False(t, app.NeedsRehash(current))
}
