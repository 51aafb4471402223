package visibility

import (
	"reflect"
	"testing"
)

type row struct {
	id    int
	owner string
}

func ownerOf(r row) string { return r.owner }

func TestFilterNonStaffSeesOnlyOwnRows(t *testing.T) {
	rows := []row{
		{1, "REF_X"},
		{2, "REF_Y"},
		{3, "REF_X"},
		{4, "REF_Z"},
	}

	got := Filter(Requester{RefereeID: "REF_X"}, rows, ownerOf)

	want := []row{{1, "REF_X"}, {3, "REF_X"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected only REF_X rows, got %+v", got)
	}
}

func TestFilterStaffSeesAllRows(t *testing.T) {
	rows := []row{
		{1, "REF_X"},
		{2, "REF_Y"},
	}

	got := Filter(Requester{RefereeID: "REF_X", IsStaff: true}, rows, ownerOf)

	if len(got) != len(rows) {
		t.Fatalf("staff should see all %d rows, got %d", len(rows), len(got))
	}
}

func TestFilterHidesUnownedRowsFromNonStaff(t *testing.T) {
	rows := []row{
		{1, ""},
		{2, "REF_X"},
	}

	got := Filter(Requester{RefereeID: "REF_X"}, rows, ownerOf)

	if len(got) != 1 || got[0].id != 2 {
		t.Fatalf("row without an owner should be hidden, got %+v", got)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(Requester{RefereeID: "REF_X"}, nil, ownerOf)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestAllowed(t *testing.T) {
	cases := []struct {
		name  string
		req   Requester
		owner string
		want  bool
	}{
		{"owner may act on own row", Requester{RefereeID: "REF_X"}, "REF_X", true},
		{"non-staff may not act on another referee's row", Requester{RefereeID: "REF_X"}, "REF_Y", false},
		{"staff may act on any row", Requester{RefereeID: "REF_X", IsStaff: true}, "REF_Y", true},
		{"staff may act on unowned rows", Requester{IsStaff: true}, "", true},
		{"unowned row belongs to nobody", Requester{RefereeID: "REF_X"}, "", false},
		{"requester without a profile may act on nothing", Requester{}, "REF_X", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allowed(tc.req, tc.owner); got != tc.want {
				t.Fatalf("Allowed(%+v, %q) = %v, want %v", tc.req, tc.owner, got, tc.want)
			}
		})
	}
}

func TestFilterRequesterWithNoProfileSeesNothing(t *testing.T) {
	rows := []row{{1, "REF_X"}, {2, ""}}

	got := Filter(Requester{RefereeID: ""}, rows, ownerOf)

	if len(got) != 0 {
		t.Fatalf("requester without a referee profile should see nothing, got %+v", got)
	}
}
