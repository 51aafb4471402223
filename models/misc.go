package models

type Notification struct {
	NotificationID   string   `json:"notification_id"`
	Referee          *Referee `json:"referee,omitempty"`
	RefereeID        string   `json:"-"`
	Match            *Match   `json:"match,omitempty"`
	NotificationType string   `json:"notification_type"`
	Date             string   `json:"date"`
}

type Preference struct {
	PreferenceID int      `json:"preference_ID"`
	Referee      *Referee `json:"referee,omitempty"`
	RefereeID    string   `json:"-"`
	Venue        *Venue   `json:"venue,omitempty"`
}

type Relative struct {
	RelativeID   int      `json:"relative_id"`
	Referee      *Referee `json:"referee,omitempty"`
	RefereeID    string   `json:"-"`
	Club         *Club    `json:"club,omitempty"`
	RelativeName string   `json:"relative_name"`
	Relationship string   `json:"relationship"`
	Age          int      `json:"age"`
}
