package controllers

import (
	"database/sql"
	"errors"

	"refassign-backend/database"
	"refassign-backend/models"

	"github.com/gofiber/fiber/v2"
)

func ListVenues(c *fiber.Ctx) error {
	rows, err := database.DB.Query(`SELECT venue_id, venue_name, capacity, location FROM venues ORDER BY venue_id`)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load venues"})
	}
	defer rows.Close()

	venues := []models.Venue{}
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.VenueID, &v.VenueName, &v.Capacity, &v.Location); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load venues"})
		}
		venues = append(venues, v)
	}
	return c.JSON(venues)
}

func GetVenue(c *fiber.Ctx) error {
	var v models.Venue
	err := database.DB.QueryRow(`
		SELECT venue_id, venue_name, capacity, location FROM venues WHERE venue_id = $1
	`, c.Params("id")).Scan(&v.VenueID, &v.VenueName, &v.Capacity, &v.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Venue not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load venue"})
	}
	return c.JSON(v)
}

func CreateVenue(c *fiber.Ctx) error {
	var v models.Venue
	if err := c.BodyParser(&v); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	_, err := database.DB.Exec(`
		INSERT INTO venues (venue_id, venue_name, capacity, location)
		VALUES ($1, $2, $3, $4)
	`, v.VenueID, v.VenueName, v.Capacity, v.Location)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Venue already exists or invalid data"})
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func UpdateVenue(c *fiber.Ctx) error {
	var v models.Venue
	if err := c.BodyParser(&v); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	result, err := database.DB.Exec(`
		UPDATE venues SET venue_name = $1, capacity = $2, location = $3 WHERE venue_id = $4
	`, v.VenueName, v.Capacity, v.Location, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid venue data"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Venue not found"})
	}
	v.VenueID = c.Params("id")
	return c.JSON(v)
}

func DeleteVenue(c *fiber.Ctx) error {
	result, err := database.DB.Exec(`DELETE FROM venues WHERE venue_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Venue is still referenced"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Venue not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VenueUpcomingMatches lists matches scheduled at a venue from today onward.
func VenueUpcomingMatches(c *fiber.Ctx) error {
	var venueID string
	err := database.DB.QueryRow(`SELECT venue_id FROM venues WHERE venue_id = $1`, c.Params("id")).Scan(&venueID)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Venue not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load venue"})
	}

	matches, err := queryMatches(c.Context(),
		" WHERE m.venue_id = $1 AND m.match_date >= $2 ORDER BY m.match_date", venueID, today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load matches"})
	}
	return c.JSON(matches)
}
