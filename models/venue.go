package models

type Venue struct {
	VenueID   string `json:"venue_id"`
	VenueName string `json:"venue_name"`
	Capacity  int    `json:"capacity"`
	Location  string `json:"location"`
}

type Club struct {
	ClubID             string `json:"club_id"`
	ClubName           string `json:"club_name"`
	HomeVenue          *Venue `json:"home_venue,omitempty"`
	ContactName        string `json:"contact_name"`
	ContactPhoneNumber string `json:"contact_phone_number"`
}
