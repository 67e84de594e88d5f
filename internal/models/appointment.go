package models

import "time"

// Appointment statuses. Status is mutated outside of this application
// (e.g. by the practitioner directly), so only the default is written here.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Services a visitor can request. Submitted values are whitelisted
// against this set before being stored.
var AllowedServices = []string{"Real Estate", "Life Insurance", "Free Consultation"}

// Appointment represents a service request saved from the schedule page.
// The actual calendar booking happens in the external scheduling widget.
type Appointment struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Services  string    `db:"services"` // comma-separated whitelisted values
	Notes     string    `db:"notes"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
