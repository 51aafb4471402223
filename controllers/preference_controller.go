package controllers

import (
	"database/sql"
	"errors"

	"refassign-backend/database"
	"refassign-backend/models"
	"refassign-backend/visibility"

	"github.com/gofiber/fiber/v2"
)

const preferenceSelect = `
	SELECT p.preference_id,
	       r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
	       r.last_name, r.gender, r.age, r.location, r.zip_code,
	       r.phone_number, r.experience_years, r.level,
	       v.venue_id, v.venue_name, v.capacity, v.location
	FROM preferences p
	JOIN referees r ON r.referee_id = p.referee_id
	LEFT JOIN users u ON u.id = r.user_id
	JOIN venues v ON v.venue_id = p.venue_id`

func scanPreferenceRow(s rowScanner) (*models.Preference, error) {
	var (
		p     models.Preference
		ref   models.Referee
		venue models.Venue
		zip   sql.NullString
	)
	if err := s.Scan(
		&p.PreferenceID,
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		&venue.VenueID, &venue.VenueName, &venue.Capacity, &venue.Location,
	); err != nil {
		return nil, err
	}
	ref.ZipCode = optString(zip)
	p.Referee = &ref
	p.RefereeID = ref.RefereeID
	p.Venue = &venue
	return &p, nil
}

func ListPreferences(c *fiber.Ctx) error {
	rows, err := database.DB.QueryContext(c.Context(), preferenceSelect+" ORDER BY p.preference_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preferences"})
	}
	defer rows.Close()

	preferences := []models.Preference{}
	for rows.Next() {
		p, err := scanPreferenceRow(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preferences"})
		}
		preferences = append(preferences, *p)
	}

	req, err := requesterFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preferences"})
	}
	scoped := visibility.Filter(req, preferences, func(p models.Preference) string {
		return p.RefereeID
	})
	return c.JSON(scoped)
}

// scopedPreference loads a preference, hiding rows the requester does not own
// behind a 404.
func scopedPreference(c *fiber.Ctx) (*models.Preference, error) {
	p, err := scanPreferenceRow(database.DB.QueryRow(preferenceSelect+` WHERE p.preference_id = $1`, c.Params("id")))
	if err != nil {
		return nil, err
	}
	req, err := requesterFromCtx(c)
	if err != nil {
		return nil, err
	}
	if !visibility.Allowed(req, p.RefereeID) {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func GetPreference(c *fiber.Ctx) error {
	p, err := scopedPreference(c)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preference not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preference"})
	}
	return c.JSON(p)
}

type PreferenceInput struct {
	RefereeID string `json:"referee"`
	VenueID   string `json:"venue"`
}

func CreatePreference(c *fiber.Ctx) error {
	var in PreferenceInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var id int
	err := database.DB.QueryRow(`
		INSERT INTO preferences (referee_id, venue_id) VALUES ($1, $2) RETURNING preference_id
	`, in.RefereeID, in.VenueID).Scan(&id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid preference data"})
	}

	p, err := scanPreferenceRow(database.DB.QueryRow(preferenceSelect+` WHERE p.preference_id = $1`, id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preference"})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func DeletePreference(c *fiber.Ctx) error {
	if _, err := scopedPreference(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preference not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preference"})
	}

	result, err := database.DB.Exec(`DELETE FROM preferences WHERE preference_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete preference"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preference not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
