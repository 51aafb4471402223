package models

// Referee levels, stored as single characters so a plain string compare
// gives the ordinal ordering Trainee < L1 < L2 < L3 < L4.
const (
	LevelTrainee = "0"
	LevelOne     = "1"
	LevelTwo     = "2"
	LevelThree   = "3"
	LevelFour    = "4"
)

type Referee struct {
	RefereeID       string  `json:"referee_id"`
	Username        string  `json:"username,omitempty"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Gender          string  `json:"gender"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	Age             int     `json:"age"`
	Location        string  `json:"location"`
	ZipCode         *string `json:"zip_code"`
	PhoneNumber     string  `json:"phone_number"`
	ExperienceYears int     `json:"experience_years"`
	Level           string  `json:"level"`
}
