// Package scheduling covers the referee-to-match assignment lifecycle:
// accept/decline status writes and the eligible-referee query backing match
// assignment.
package scheduling

import (
	"context"
	"errors"
	"time"

	"refassign-backend/availability"
	"refassign-backend/models"
)

var ErrNotFound = errors.New("appointment not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Accept marks an appointment confirmed. The write is unconditional: there is
// no guard against re-accepting or accepting a cancelled or complete
// appointment, and the last write wins.
func (s *Service) Accept(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return s.setStatus(ctx, appointmentID, models.StatusConfirmed)
}

// Decline marks an appointment declined, with the same last-write-wins
// semantics as Accept.
func (s *Service) Decline(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return s.setStatus(ctx, appointmentID, models.StatusDeclined)
}

func (s *Service) setStatus(ctx context.Context, appointmentID, status string) (*models.Appointment, error) {
	if err := s.repo.SetStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, appointmentID)
}

// EligibleReferees returns the referees with an Available record on date,
// optionally restricted to level >= minLevel.
func (s *Service) EligibleReferees(ctx context.Context, date, minLevel string) ([]models.Referee, error) {
	if date == "" {
		return nil, &availability.ValidationError{Fields: []string{"date"}}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &availability.ValidationError{Fields: []string{"date"}}
	}
	return s.repo.EligibleReferees(ctx, date, minLevel)
}

// LevelAtLeast reports whether a referee level satisfies a minimum. Levels
// are single characters '0' (Trainee) through '4', so the ordinal ordering is
// a plain string compare. An empty minimum matches every level.
func LevelAtLeast(level, minLevel string) bool {
	return minLevel == "" || level >= minLevel
}
