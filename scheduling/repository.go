package scheduling

import (
	"context"

	"refassign-backend/models"
)

type Repository interface {
	// SetStatus writes a status by primary key, returning ErrNotFound when
	// no appointment has that id.
	SetStatus(ctx context.Context, appointmentID, status string) error

	// Get returns the appointment with its referee, venue, and match
	// materialized.
	Get(ctx context.Context, appointmentID string) (*models.Appointment, error)

	// EligibleReferees returns distinct referees with an Available record on
	// date; minLevel "" means no level restriction.
	EligibleReferees(ctx context.Context, date, minLevel string) ([]models.Referee, error)
}
