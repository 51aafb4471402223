package scheduling

import (
	"context"
	"errors"
	"testing"

	"refassign-backend/availability"
	"refassign-backend/models"
)

type memoryRepo struct {
	appointments map[string]*models.Appointment
	referees     []models.Referee
	// available dates per referee id
	available map[string][]string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		appointments: map[string]*models.Appointment{},
		available:    map[string][]string{},
	}
}

func (m *memoryRepo) SetStatus(_ context.Context, id, status string) error {
	ap, ok := m.appointments[id]
	if !ok {
		return ErrNotFound
	}
	ap.Status = status
	return nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (*models.Appointment, error) {
	ap, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ap
	return &copied, nil
}

func (m *memoryRepo) EligibleReferees(_ context.Context, date, minLevel string) ([]models.Referee, error) {
	out := []models.Referee{}
	for _, ref := range m.referees {
		if !LevelAtLeast(ref.Level, minLevel) {
			continue
		}
		for _, d := range m.available[ref.RefereeID] {
			if d == date {
				out = append(out, ref)
				break
			}
		}
	}
	return out, nil
}

func TestAcceptThenDeclineEndsDeclined(t *testing.T) {
	repo := newMemoryRepo()
	repo.appointments["APT_1"] = &models.Appointment{AppointmentID: "APT_1", Status: models.StatusUpcoming}
	svc := NewService(repo)
	ctx := context.Background()

	ap, err := svc.Accept(ctx, "APT_1")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ap.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed after accept, got %q", ap.Status)
	}

	ap, err = svc.Decline(ctx, "APT_1")
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if ap.Status != models.StatusDeclined {
		t.Fatalf("expected declined after decline, got %q", ap.Status)
	}
}

func TestAcceptOverwritesTerminalStatus(t *testing.T) {
	// No transition guard exists: accepting a cancelled appointment succeeds.
	repo := newMemoryRepo()
	repo.appointments["APT_1"] = &models.Appointment{AppointmentID: "APT_1", Status: models.StatusCancelled}
	svc := NewService(repo)

	ap, err := svc.Accept(context.Background(), "APT_1")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ap.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed, got %q", ap.Status)
	}
}

func TestAcceptUnknownAppointment(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Accept(context.Background(), "APT_MISSING")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEligibleRefereesLevelFilter(t *testing.T) {
	repo := newMemoryRepo()
	repo.referees = []models.Referee{
		{RefereeID: "REF_T", Level: models.LevelTrainee},
		{RefereeID: "REF_1", Level: models.LevelOne},
		{RefereeID: "REF_2", Level: models.LevelTwo},
		{RefereeID: "REF_4", Level: models.LevelFour},
	}
	repo.available = map[string][]string{
		"REF_T": {"2024-09-26"},
		"REF_1": {"2024-09-26"},
		"REF_2": {"2024-09-26"},
		"REF_4": {"2024-09-27"}, // wrong day
	}
	svc := NewService(repo)

	got, err := svc.EligibleReferees(context.Background(), "2024-09-26", models.LevelTwo)
	if err != nil {
		t.Fatalf("eligible referees: %v", err)
	}
	if len(got) != 1 || got[0].RefereeID != "REF_2" {
		t.Fatalf("expected only REF_2 eligible, got %+v", got)
	}
}

func TestEligibleRefereesRequiresDate(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, date := range []string{"", "not-a-date"} {
		_, err := svc.EligibleReferees(context.Background(), date, "")
		var verr *availability.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("date %q: expected ValidationError, got %v", date, err)
		}
	}
}

func TestLevelAtLeast(t *testing.T) {
	cases := []struct {
		level, min string
		want       bool
	}{
		{models.LevelTrainee, "", true},
		{models.LevelTrainee, models.LevelOne, false},
		{models.LevelTwo, models.LevelTwo, true},
		{models.LevelFour, models.LevelTwo, true},
		{models.LevelOne, models.LevelThree, false},
	}
	for _, tc := range cases {
		if got := LevelAtLeast(tc.level, tc.min); got != tc.want {
			t.Fatalf("LevelAtLeast(%q, %q) = %v, want %v", tc.level, tc.min, got, tc.want)
		}
	}
}
