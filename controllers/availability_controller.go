package controllers

import (
	"errors"

	"refassign-backend/availability"
	"refassign-backend/database"

	"github.com/gofiber/fiber/v2"
)

func ledger() *availability.Ledger {
	return availability.NewLedger(availability.NewPostgresRepository(database.DB))
}

// UpsertAvailability records or replaces the availability for one
// (referee, date) pair and returns the referee's refreshed date lists.
func UpsertAvailability(c *fiber.Ctx) error {
	var in availability.UpsertInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	result, err := ledger().Upsert(c.Context(), in)
	if err != nil {
		var verr *availability.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save availability"})
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(result)
}

func GetAvailableDates(c *fiber.Ctx) error {
	return datesByType(c, availability.TypeAvailable)
}

func GetUnavailableDates(c *fiber.Ctx) error {
	return datesByType(c, availability.TypeUnavailable)
}

func datesByType(c *fiber.Ctx, availableType string) error {
	refereeID := c.Query("referee")
	if refereeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "referee parameter is required"})
	}

	dates, err := ledger().DatesByType(c.Context(), refereeID, availableType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dates"})
	}
	return c.JSON(dates)
}

func ListAvailability(c *fiber.Ctx) error {
	req, err := requesterFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availability"})
	}

	records, err := ledger().List(c.Context(), req, c.Query("referee"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availability"})
	}
	return c.JSON(records)
}
