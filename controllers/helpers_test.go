package controllers

import (
	"database/sql"
	"errors"
	"testing"
)

func TestRequesterForMissingProfile(t *testing.T) {
	req, err := requesterFor(7, false, func(int) (string, error) {
		return "", sql.ErrNoRows
	})
	if err != nil {
		t.Fatalf("missing profile should not be an error, got %v", err)
	}
	if req.UserID != 7 || req.RefereeID != "" {
		t.Fatalf("expected requester with no referee id, got %+v", req)
	}
}

func TestRequesterForLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection refused")
	_, err := requesterFor(7, false, func(int) (string, error) {
		return "", lookupErr
	})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("lookup failure must surface, got %v", err)
	}
}

func TestRequesterForResolvesProfile(t *testing.T) {
	req, err := requesterFor(7, true, func(id int) (string, error) {
		if id != 7 {
			t.Fatalf("looked up wrong user id %d", id)
		}
		return "REF_A", nil
	})
	if err != nil {
		t.Fatalf("requesterFor: %v", err)
	}
	if req.RefereeID != "REF_A" || !req.IsStaff {
		t.Fatalf("unexpected requester %+v", req)
	}
}
