package models

// Appointment statuses. Accept and decline write the ad-hoc confirmed and
// declined markers on top of the regular lifecycle set; nothing guards a
// transition out of complete or cancelled.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusComplete  = "complete"
	StatusCancelled = "cancelled"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

type Appointment struct {
	AppointmentID   string   `json:"appointment_id"`
	Referee         *Referee `json:"referee,omitempty"`
	Venue           *Venue   `json:"venue,omitempty"`
	Match           *Match   `json:"match,omitempty"`
	Distance        float64  `json:"distance"`
	AppointmentDate string   `json:"appointment_date"`
	AppointmentTime *string  `json:"appointment_time"`
	Status          string   `json:"status"`
}

type AppointmentInput struct {
	AppointmentID   string  `json:"appointment_id"`
	RefereeID       string  `json:"referee"`
	VenueID         string  `json:"venue"`
	MatchID         string  `json:"match"`
	Distance        float64 `json:"distance"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime *string `json:"appointment_time"`
	Status          string  `json:"status"`
}
