package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldengirlWebsite/internal/models"
)

func TestFilterServices(t *testing.T) {
	cases := []struct {
		name      string
		requested []string
		want      []string
	}{
		{"all valid", []string{"Real Estate", "Life Insurance"}, []string{"Real Estate", "Life Insurance"}},
		{"unknown dropped", []string{"Real Estate", "Crypto Advice"}, []string{"Real Estate"}},
		{"case sensitive", []string{"real estate"}, nil},
		{"duplicates collapse", []string{"Real Estate", "Real Estate"}, []string{"Real Estate"}},
		{"empty", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, filterServices(tc.requested))
		})
	}
}

func TestCreateAndListAppointments(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := createTestUser(t, app, "client@example.com", "Password1!", models.RoleUser, true)

	first, err := app.CreateAppointment(ctx, userID, []string{"Real Estate"}, "first request")
	require.NoError(t, err)
	second, err := app.CreateAppointment(ctx, userID, []string{"Life Insurance", "Free Consultation"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	appointments, err := app.GetAppointmentsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, appointments, 2)

	// Newest first; same-second inserts fall back to id ordering.
	assert.Equal(t, second, appointments[0].ID)
	assert.Equal(t, "Life Insurance, Free Consultation", appointments[0].Services)
	assert.Equal(t, models.StatusPending, appointments[0].Status)
	assert.Equal(t, "first request", appointments[1].Notes)
}

func TestGetAppointmentsByUserScopesToOwner(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	owner := createTestUser(t, app, "owner@example.com", "Password1!", models.RoleUser, true)
	other := createTestUser(t, app, "other@example.com", "Password1!", models.RoleUser, true)

	_, err := app.CreateAppointment(ctx, owner, []string{"Real Estate"}, "")
	require.NoError(t, err)

	appointments, err := app.GetAppointmentsByUser(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, appointments)
}
