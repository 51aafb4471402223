package models

type Match struct {
	MatchID   string   `json:"match_id"`
	Referee   *Referee `json:"referee,omitempty"`
	HomeClub  *Club    `json:"home_club,omitempty"`
	AwayClub  *Club    `json:"away_club,omitempty"`
	Venue     *Venue   `json:"venue,omitempty"`
	MatchDate string   `json:"match_date"`
	MatchTime *string  `json:"match_time"`
	Level     string   `json:"level"`
}

// MatchInput is the write shape: relations by id rather than nested objects.
type MatchInput struct {
	MatchID    string  `json:"match_id"`
	RefereeID  string  `json:"referee"`
	HomeClubID string  `json:"home_club"`
	AwayClubID string  `json:"away_club"`
	VenueID    string  `json:"venue"`
	MatchDate  string  `json:"match_date"`
	MatchTime  *string `json:"match_time"`
	Level      string  `json:"level"`
}
