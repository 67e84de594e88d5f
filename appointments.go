package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goldengirlWebsite/internal/models"
)

// filterServices keeps only values from the allowed service list,
// preserving submission order and dropping repeats. Checkbox forms
// can't submit duplicates but a hand-crafted request can.
func filterServices(requested []string) []string {
	var selected []string
	seen := make(map[string]bool, len(requested))
	for _, s := range requested {
		if seen[s] {
			continue
		}
		for _, allowed := range models.AllowedServices {
			if s == allowed {
				selected = append(selected, s)
				seen[s] = true
				break
			}
		}
	}
	return selected
}

// CreateAppointment stores a service request. Services must already be
// whitelisted; they are stored as a comma-separated string. Status
// starts as pending and is only ever changed outside this application.
func (app *App) CreateAppointment(ctx context.Context, userID int64, services []string, notes string) (int64, error) {
	res, err := app.DB.ExecContext(ctx, `
		INSERT INTO appointments (user_id, services, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, strings.Join(services, ", "), notes, models.StatusPending, time.Now())
	if err != nil {
		return 0, fmt.Errorf("inserting appointment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new appointment id: %w", err)
	}

	AppLogger.Infow("service request saved", "appointment_id", id, "user_id", userID)
	return id, nil
}

// GetAppointmentsByUser returns the user's service requests, newest first.
func (app *App) GetAppointmentsByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := app.DB.SelectContext(ctx, &appointments, `
		SELECT id, user_id, services, notes, status, created_at
		FROM appointments
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	return appointments, nil
}
