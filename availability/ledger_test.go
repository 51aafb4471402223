package availability

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"refassign-backend/visibility"
)

// memoryRepo implements Repository with the same natural-key contract as the
// postgres implementation: one record per (referee, date).
type memoryRepo struct {
	records map[string]Record // key: refereeID + "|" + date
	nextID  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: map[string]Record{}, nextID: 1}
}

func (m *memoryRepo) Upsert(_ context.Context, rec Record) (bool, error) {
	key := rec.RefereeID + "|" + rec.Date
	if existing, ok := m.records[key]; ok {
		existing.AvailableType = rec.AvailableType
		existing.Weekday = rec.Weekday
		m.records[key] = existing
		return false, nil
	}
	rec.AvailableID = m.nextID
	m.nextID++
	m.records[key] = rec
	return true, nil
}

func (m *memoryRepo) DatesByType(_ context.Context, refereeID, availableType string) ([]string, error) {
	dates := []string{}
	for _, rec := range m.records {
		if rec.RefereeID == refereeID && rec.AvailableType == availableType {
			dates = append(dates, rec.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *memoryRepo) List(_ context.Context, refereeID string) ([]Record, error) {
	out := []Record{}
	for _, rec := range m.records {
		if refereeID == "" || rec.RefereeID == refereeID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func boolPtr(b bool) *bool { return &b }

func TestUpsertCreatesThenReplaces(t *testing.T) {
	ledger := NewLedger(newMemoryRepo())
	ctx := context.Background()

	res, err := ledger.Upsert(ctx, UpsertInput{RefereeID: "REF_A", Date: "2024-09-26", IsAvailable: boolPtr(true)})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !res.Created {
		t.Fatal("first upsert should create a record")
	}
	if !reflect.DeepEqual(res.AvailableDates, []string{"2024-09-26"}) {
		t.Fatalf("unexpected available dates: %v", res.AvailableDates)
	}
	if len(res.UnavailableDates) != 0 {
		t.Fatalf("expected no unavailable dates, got %v", res.UnavailableDates)
	}

	// Same natural key with the opposite type replaces, never duplicates.
	res, err = ledger.Upsert(ctx, UpsertInput{RefereeID: "REF_A", Date: "2024-09-26", IsAvailable: boolPtr(false)})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if res.Created {
		t.Fatal("second upsert for the same (referee, date) must update, not create")
	}
	if len(res.AvailableDates) != 0 {
		t.Fatalf("date should have moved to unavailable, still available: %v", res.AvailableDates)
	}
	if !reflect.DeepEqual(res.UnavailableDates, []string{"2024-09-26"}) {
		t.Fatalf("unexpected unavailable dates: %v", res.UnavailableDates)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	ledger := NewLedger(newMemoryRepo())
	ctx := context.Background()
	in := UpsertInput{RefereeID: "REF_A", Date: "2024-09-26", IsAvailable: boolPtr(true)}

	first, err := ledger.Upsert(ctx, in)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := ledger.Upsert(ctx, in)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !reflect.DeepEqual(first.AvailableDates, second.AvailableDates) ||
		!reflect.DeepEqual(first.UnavailableDates, second.UnavailableDates) {
		t.Fatalf("repeated upsert changed the date lists: %v vs %v", first, second)
	}
}

func TestAvailableAndUnavailablePartition(t *testing.T) {
	ledger := NewLedger(newMemoryRepo())
	ctx := context.Background()

	dates := []struct {
		date      string
		available bool
	}{
		{"2024-09-26", true},
		{"2024-09-27", false},
		{"2024-09-28", true},
		{"2024-09-27", true}, // flips the 27th back to available
	}
	for _, d := range dates {
		if _, err := ledger.Upsert(ctx, UpsertInput{RefereeID: "REF_A", Date: d.date, IsAvailable: boolPtr(d.available)}); err != nil {
			t.Fatalf("upsert %s: %v", d.date, err)
		}
	}

	available, _ := ledger.DatesByType(ctx, "REF_A", TypeAvailable)
	unavailable, _ := ledger.DatesByType(ctx, "REF_A", TypeUnavailable)

	seen := map[string]bool{}
	for _, d := range available {
		seen[d] = true
	}
	for _, d := range unavailable {
		if seen[d] {
			t.Fatalf("date %s appears in both available and unavailable lists", d)
		}
	}
	if !reflect.DeepEqual(available, []string{"2024-09-26", "2024-09-27", "2024-09-28"}) {
		t.Fatalf("unexpected available dates: %v", available)
	}
	if len(unavailable) != 0 {
		t.Fatalf("unexpected unavailable dates: %v", unavailable)
	}
}

func TestUpsertValidation(t *testing.T) {
	ledger := NewLedger(newMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		in     UpsertInput
		fields []string
	}{
		{"missing referee", UpsertInput{Date: "2024-09-26", IsAvailable: boolPtr(true)}, []string{"referee"}},
		{"missing date", UpsertInput{RefereeID: "REF_A", IsAvailable: boolPtr(true)}, []string{"date"}},
		{"missing isAvailable", UpsertInput{RefereeID: "REF_A", Date: "2024-09-26"}, []string{"isAvailable"}},
		{"everything missing", UpsertInput{}, []string{"referee", "date", "isAvailable"}},
		{"malformed date", UpsertInput{RefereeID: "REF_A", Date: "26/09/2024", IsAvailable: boolPtr(true)}, []string{"date"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.Upsert(ctx, tc.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !reflect.DeepEqual(verr.Fields, tc.fields) {
				t.Fatalf("expected fields %v, got %v", tc.fields, verr.Fields)
			}
		})
	}
}

func TestWeekdayDerivation(t *testing.T) {
	wd, err := Weekday("2024-09-26", false)
	if err != nil {
		t.Fatalf("weekday: %v", err)
	}
	if wd == nil || *wd != "Thu" {
		t.Fatalf("expected Thu for 2024-09-26, got %v", wd)
	}

	wd, err = Weekday("2024-09-26", true)
	if err != nil {
		t.Fatalf("weekday general: %v", err)
	}
	if wd != nil {
		t.Fatalf("general submissions must store no weekday, got %q", *wd)
	}
}

func TestUpsertStoresWeekday(t *testing.T) {
	repo := newMemoryRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	if _, err := ledger.Upsert(ctx, UpsertInput{RefereeID: "REF_A", Date: "2024-09-26", IsAvailable: boolPtr(true)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec := repo.records["REF_A|2024-09-26"]
	if rec.Weekday == nil || *rec.Weekday != "Thu" {
		t.Fatalf("expected stored weekday Thu, got %v", rec.Weekday)
	}

	if _, err := ledger.Upsert(ctx, UpsertInput{RefereeID: "REF_A", Date: "2024-09-26", IsAvailable: boolPtr(true), IsGeneral: true}); err != nil {
		t.Fatalf("general upsert: %v", err)
	}
	rec = repo.records["REF_A|2024-09-26"]
	if rec.Weekday != nil {
		t.Fatalf("general upsert should clear the weekday, got %q", *rec.Weekday)
	}
}

func TestListScoping(t *testing.T) {
	repo := newMemoryRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	for _, ref := range []string{"REF_A", "REF_B"} {
		if _, err := ledger.Upsert(ctx, UpsertInput{RefereeID: ref, Date: "2024-09-26", IsAvailable: boolPtr(true)}); err != nil {
			t.Fatalf("seed %s: %v", ref, err)
		}
	}

	// Staff with no explicit referee see everything.
	all, err := ledger.List(ctx, visibility.Requester{IsStaff: true}, "")
	if err != nil {
		t.Fatalf("staff list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("staff should see 2 records, got %d", len(all))
	}

	// Non-staff with no explicit referee see only their own rows.
	own, err := ledger.List(ctx, visibility.Requester{RefereeID: "REF_A"}, "")
	if err != nil {
		t.Fatalf("own list: %v", err)
	}
	if len(own) != 1 || own[0].RefereeID != "REF_A" {
		t.Fatalf("expected only REF_A records, got %+v", own)
	}

	// An explicit referee parameter wins regardless of requester.
	other, err := ledger.List(ctx, visibility.Requester{RefereeID: "REF_A"}, "REF_B")
	if err != nil {
		t.Fatalf("explicit list: %v", err)
	}
	if len(other) != 1 || other[0].RefereeID != "REF_B" {
		t.Fatalf("explicit referee param should return REF_B records, got %+v", other)
	}

	// Non-staff without a referee profile see nothing.
	none, err := ledger.List(ctx, visibility.Requester{}, "")
	if err != nil {
		t.Fatalf("no-profile list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("requester without a profile should see nothing, got %+v", none)
	}
}

func TestDatesByTypeRequiresReferee(t *testing.T) {
	ledger := NewLedger(newMemoryRepo())
	_, err := ledger.DatesByType(context.Background(), "", TypeAvailable)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for missing referee, got %v", err)
	}
}
