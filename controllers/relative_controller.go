package controllers

import (
	"database/sql"
	"errors"

	"refassign-backend/database"
	"refassign-backend/models"
	"refassign-backend/visibility"

	"github.com/gofiber/fiber/v2"
)

const relativeSelect = `
	SELECT rel.relative_id, rel.relative_name, rel.relationship, rel.age,
	       r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
	       r.last_name, r.gender, r.age, r.location, r.zip_code,
	       r.phone_number, r.experience_years, r.level,
	       c.club_id, c.club_name, c.contact_name, c.contact_phone_number,
	       v.venue_id, v.venue_name, v.capacity, v.location
	FROM relatives rel
	JOIN referees r ON r.referee_id = rel.referee_id
	LEFT JOIN users u ON u.id = r.user_id
	JOIN clubs c ON c.club_id = rel.club_id
	JOIN venues v ON v.venue_id = c.home_venue_id`

func scanRelativeRow(s rowScanner) (*models.Relative, error) {
	var (
		rel   models.Relative
		ref   models.Referee
		club  models.Club
		venue models.Venue
		zip   sql.NullString
	)
	if err := s.Scan(
		&rel.RelativeID, &rel.RelativeName, &rel.Relationship, &rel.Age,
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		&club.ClubID, &club.ClubName, &club.ContactName, &club.ContactPhoneNumber,
		&venue.VenueID, &venue.VenueName, &venue.Capacity, &venue.Location,
	); err != nil {
		return nil, err
	}
	ref.ZipCode = optString(zip)
	club.HomeVenue = &venue
	rel.Referee = &ref
	rel.RefereeID = ref.RefereeID
	rel.Club = &club
	return &rel, nil
}

// ListRelatives exists for the conflict-of-interest screens: relatives tie a
// referee to a club so assignments can be reviewed.
func ListRelatives(c *fiber.Ctx) error {
	rows, err := database.DB.QueryContext(c.Context(), relativeSelect+" ORDER BY rel.relative_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relatives"})
	}
	defer rows.Close()

	relatives := []models.Relative{}
	for rows.Next() {
		rel, err := scanRelativeRow(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relatives"})
		}
		relatives = append(relatives, *rel)
	}

	req, err := requesterFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relatives"})
	}
	scoped := visibility.Filter(req, relatives, func(r models.Relative) string {
		return r.RefereeID
	})
	return c.JSON(scoped)
}

// scopedRelative loads a relative, hiding rows the requester does not own
// behind a 404.
func scopedRelative(c *fiber.Ctx) (*models.Relative, error) {
	rel, err := scanRelativeRow(database.DB.QueryRow(relativeSelect+` WHERE rel.relative_id = $1`, c.Params("id")))
	if err != nil {
		return nil, err
	}
	req, err := requesterFromCtx(c)
	if err != nil {
		return nil, err
	}
	if !visibility.Allowed(req, rel.RefereeID) {
		return nil, sql.ErrNoRows
	}
	return rel, nil
}

func GetRelative(c *fiber.Ctx) error {
	rel, err := scopedRelative(c)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Relative not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relative"})
	}
	return c.JSON(rel)
}

type RelativeInput struct {
	RefereeID    string `json:"referee"`
	ClubID       string `json:"club"`
	RelativeName string `json:"relative_name"`
	Relationship string `json:"relationship"`
	Age          int    `json:"age"`
}

func CreateRelative(c *fiber.Ctx) error {
	var in RelativeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var id int
	err := database.DB.QueryRow(`
		INSERT INTO relatives (referee_id, club_id, relative_name, relationship, age)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING relative_id
	`, in.RefereeID, in.ClubID, in.RelativeName, in.Relationship, in.Age).Scan(&id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid relative data"})
	}

	rel, err := scanRelativeRow(database.DB.QueryRow(relativeSelect+` WHERE rel.relative_id = $1`, id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relative"})
	}
	return c.Status(fiber.StatusCreated).JSON(rel)
}

func UpdateRelative(c *fiber.Ctx) error {
	var in RelativeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if _, err := scopedRelative(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Relative not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relative"})
	}

	result, err := database.DB.Exec(`
		UPDATE relatives
		SET referee_id = $1, club_id = $2, relative_name = $3, relationship = $4, age = $5
		WHERE relative_id = $6
	`, in.RefereeID, in.ClubID, in.RelativeName, in.Relationship, in.Age, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid relative data"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Relative not found"})
	}

	rel, err := scanRelativeRow(database.DB.QueryRow(relativeSelect+` WHERE rel.relative_id = $1`, c.Params("id")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relative"})
	}
	return c.JSON(rel)
}

func DeleteRelative(c *fiber.Ctx) error {
	if _, err := scopedRelative(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Relative not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load relative"})
	}

	result, err := database.DB.Exec(`DELETE FROM relatives WHERE relative_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete relative"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Relative not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
