package controllers

import (
	"database/sql"
	"errors"

	"refassign-backend/database"
	"refassign-backend/models"

	"github.com/gofiber/fiber/v2"
)

const clubSelect = `
	SELECT c.club_id, c.club_name, c.contact_name, c.contact_phone_number,
	       v.venue_id, v.venue_name, v.capacity, v.location
	FROM clubs c
	JOIN venues v ON v.venue_id = c.home_venue_id`

func scanClubRow(s rowScanner) (*models.Club, error) {
	var (
		club  models.Club
		venue models.Venue
	)
	if err := s.Scan(
		&club.ClubID, &club.ClubName, &club.ContactName, &club.ContactPhoneNumber,
		&venue.VenueID, &venue.VenueName, &venue.Capacity, &venue.Location,
	); err != nil {
		return nil, err
	}
	club.HomeVenue = &venue
	return &club, nil
}

func queryClubs(c *fiber.Ctx, where string, args ...any) ([]models.Club, error) {
	rows, err := database.DB.QueryContext(c.Context(), clubSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := []models.Club{}
	for rows.Next() {
		club, err := scanClubRow(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, *club)
	}
	return clubs, rows.Err()
}

func ListClubs(c *fiber.Ctx) error {
	clubs, err := queryClubs(c, " ORDER BY c.club_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load clubs"})
	}
	return c.JSON(clubs)
}

func GetClub(c *fiber.Ctx) error {
	club, err := scanClubRow(database.DB.QueryRow(clubSelect+` WHERE c.club_id = $1`, c.Params("id")))
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Club not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load club"})
	}
	return c.JSON(club)
}

type ClubInput struct {
	ClubID             string `json:"club_id"`
	ClubName           string `json:"club_name"`
	HomeVenueID        string `json:"home_venue"`
	ContactName        string `json:"contact_name"`
	ContactPhoneNumber string `json:"contact_phone_number"`
}

func CreateClub(c *fiber.Ctx) error {
	var in ClubInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	_, err := database.DB.Exec(`
		INSERT INTO clubs (club_id, club_name, home_venue_id, contact_name, contact_phone_number)
		VALUES ($1, $2, $3, $4, $5)
	`, in.ClubID, in.ClubName, in.HomeVenueID, in.ContactName, in.ContactPhoneNumber)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Club already exists or invalid data"})
	}

	club, err := scanClubRow(database.DB.QueryRow(clubSelect+` WHERE c.club_id = $1`, in.ClubID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load club"})
	}
	return c.Status(fiber.StatusCreated).JSON(club)
}

func UpdateClub(c *fiber.Ctx) error {
	var in ClubInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	result, err := database.DB.Exec(`
		UPDATE clubs
		SET club_name = $1, home_venue_id = $2, contact_name = $3, contact_phone_number = $4
		WHERE club_id = $5
	`, in.ClubName, in.HomeVenueID, in.ContactName, in.ContactPhoneNumber, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid club data"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Club not found"})
	}

	club, err := scanClubRow(database.DB.QueryRow(clubSelect+` WHERE c.club_id = $1`, c.Params("id")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load club"})
	}
	return c.JSON(club)
}

func DeleteClub(c *fiber.Ctx) error {
	result, err := database.DB.Exec(`DELETE FROM clubs WHERE club_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Club is still referenced"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Club not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func clubExists(clubID string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM clubs WHERE club_id = $1)`, clubID).Scan(&exists)
	return exists, err
}

// ClubHomeMatches lists a club's upcoming home matches.
func ClubHomeMatches(c *fiber.Ctx) error {
	return clubMatches(c, " WHERE m.home_club_id = $1 AND m.match_date >= $2 ORDER BY m.match_date")
}

func clubMatches(c *fiber.Ctx, where string) error {
	clubID := c.Params("id")
	exists, err := clubExists(clubID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load club"})
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Club not found"})
	}

	matches, err := queryMatches(c.Context(), where, clubID, today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load matches"})
	}
	return c.JSON(matches)
}

// Teams endpoints expose clubs through the assignment UI's team views.

func ListTeams(c *fiber.Ctx) error {
	where := " ORDER BY c.club_id"
	args := []any{}
	if name := c.Query("name"); name != "" {
		where = " WHERE c.club_name ILIKE '%' || $1 || '%' ORDER BY c.club_id"
		args = append(args, name)
	}

	clubs, err := queryClubs(c, where, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load teams"})
	}
	return c.JSON(clubs)
}

// TeamMatches lists a team's upcoming matches, home and away combined.
func TeamMatches(c *fiber.Ctx) error {
	return clubMatches(c, ` WHERE (m.home_club_id = $1 OR m.away_club_id = $1) AND m.match_date >= $2 ORDER BY m.match_date`)
}

func TeamHomeMatches(c *fiber.Ctx) error {
	return clubMatches(c, " WHERE m.home_club_id = $1 AND m.match_date >= $2 ORDER BY m.match_date")
}

func TeamAwayMatches(c *fiber.Ctx) error {
	return clubMatches(c, " WHERE m.away_club_id = $1 AND m.match_date >= $2 ORDER BY m.match_date")
}

func TeamVenue(c *fiber.Ctx) error {
	club, err := scanClubRow(database.DB.QueryRow(clubSelect+` WHERE c.club_id = $1`, c.Params("id")))
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Club not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load club"})
	}
	if club.HomeVenue == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No home venue assigned"})
	}
	return c.JSON(club.HomeVenue)
}
