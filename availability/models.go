package availability

import (
	"fmt"
	"strings"
	"time"

	"refassign-backend/models"
)

const (
	TypeAvailable   = "A"
	TypeUnavailable = "U"
)

// Record is one availability entry. At most one record exists per
// (referee, date); submitting the same pair again overwrites type and weekday.
type Record struct {
	AvailableID   int             `json:"availableID"`
	Referee       *models.Referee `json:"referee,omitempty"`
	RefereeID     string          `json:"-"`
	Date          string          `json:"date"`
	StartTime     *string         `json:"start_time"`
	EndTime       *string         `json:"end_time"`
	Duration      *int            `json:"duration"`
	AvailableType string          `json:"availableType"`
	Weekday       *string         `json:"weekday"`
}

// UpsertInput carries an availability submission. IsAvailable is a pointer so
// an explicit false survives decoding; nil means the field was missing.
type UpsertInput struct {
	RefereeID   string `json:"referee"`
	Date        string `json:"date"`
	IsAvailable *bool  `json:"isAvailable"`
	IsGeneral   bool   `json:"isGeneral"`
}

// ValidationError names the request fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

func (in UpsertInput) Validate() error {
	var fields []string
	if strings.TrimSpace(in.RefereeID) == "" {
		fields = append(fields, "referee")
	}
	if strings.TrimSpace(in.Date) == "" {
		fields = append(fields, "date")
	}
	if in.IsAvailable == nil {
		fields = append(fields, "isAvailable")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return &ValidationError{Fields: []string{"date"}}
	}
	return nil
}

// Weekday derives the stored three-letter abbreviation for a date. General
// submissions are not tied to a recurring day, so they store no weekday.
func Weekday(date string, isGeneral bool) (*string, error) {
	if isGeneral {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"date"}}
	}
	wd := d.Format("Mon")
	return &wd, nil
}
