package availability

import (
	"context"

	"refassign-backend/visibility"
)

// Ledger is the availability ledger: date-scoped availability records per
// referee with upsert-by-natural-key semantics.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// UpsertResult carries the full, freshly-read date lists for the referee so
// clients can refresh their calendar from a single response.
type UpsertResult struct {
	Created          bool     `json:"-"`
	AvailableDates   []string `json:"availableDates"`
	UnavailableDates []string `json:"unavailableDates"`
}

func (l *Ledger) Upsert(ctx context.Context, in UpsertInput) (*UpsertResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	availableType := TypeUnavailable
	if *in.IsAvailable {
		availableType = TypeAvailable
	}
	weekday, err := Weekday(in.Date, in.IsGeneral)
	if err != nil {
		return nil, err
	}

	created, err := l.repo.Upsert(ctx, Record{
		RefereeID:     in.RefereeID,
		Date:          in.Date,
		AvailableType: availableType,
		Weekday:       weekday,
	})
	if err != nil {
		return nil, err
	}

	available, err := l.repo.DatesByType(ctx, in.RefereeID, TypeAvailable)
	if err != nil {
		return nil, err
	}
	unavailable, err := l.repo.DatesByType(ctx, in.RefereeID, TypeUnavailable)
	if err != nil {
		return nil, err
	}

	return &UpsertResult{
		Created:          created,
		AvailableDates:   available,
		UnavailableDates: unavailable,
	}, nil
}

func (l *Ledger) DatesByType(ctx context.Context, refereeID, availableType string) ([]string, error) {
	if refereeID == "" {
		return nil, &ValidationError{Fields: []string{"referee"}}
	}
	return l.repo.DatesByType(ctx, refereeID, availableType)
}

// List returns the records a requester may see. A caller-supplied refereeID
// wins over the staff/owner scoping, matching the behavior the API has always
// had; without one, staff get every record and everyone else their own.
func (l *Ledger) List(ctx context.Context, req visibility.Requester, refereeID string) ([]Record, error) {
	if refereeID == "" && !req.IsStaff {
		if req.RefereeID == "" {
			return []Record{}, nil
		}
		refereeID = req.RefereeID
	}
	return l.repo.List(ctx, refereeID)
}
