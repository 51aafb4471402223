package controllers

import (
	"context"
	"database/sql"
	"errors"

	"refassign-backend/database"
	"refassign-backend/models"
	"refassign-backend/scheduling"
	"refassign-backend/visibility"

	"github.com/gofiber/fiber/v2"
)

func schedulingService() *scheduling.Service {
	return scheduling.NewService(scheduling.NewPostgresRepository(database.DB))
}

const appointmentSelect = `
	SELECT ap.appointment_id, ap.distance, ap.appointment_date, ap.appointment_time, ap.status,
	       r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
	       r.last_name, r.gender, r.age, r.location, r.zip_code,
	       r.phone_number, r.experience_years, r.level,
	       v.venue_id, v.venue_name, v.capacity, v.location,
	       m.match_id, m.match_date, m.match_time, m.level
	FROM appointments ap
	JOIN referees r ON r.referee_id = ap.referee_id
	LEFT JOIN users u ON u.id = r.user_id
	JOIN venues v ON v.venue_id = ap.venue_id
	JOIN matches m ON m.match_id = ap.match_id`

func scanAppointmentRow(s rowScanner) (*models.Appointment, error) {
	var (
		ap          models.Appointment
		ref         models.Referee
		venue       models.Venue
		match       models.Match
		apDate      sql.NullTime
		apTime, zip sql.NullString
		matchDate   sql.NullTime
		matchTime   sql.NullString
	)
	if err := s.Scan(
		&ap.AppointmentID, &ap.Distance, &apDate, &apTime, &ap.Status,
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		&venue.VenueID, &venue.VenueName, &venue.Capacity, &venue.Location,
		&match.MatchID, &matchDate, &matchTime, &match.Level,
	); err != nil {
		return nil, err
	}

	ref.ZipCode = optString(zip)
	ap.AppointmentDate = dateString(apDate)
	ap.AppointmentTime = clock(apTime)
	match.MatchDate = dateString(matchDate)
	match.MatchTime = clock(matchTime)
	ap.Referee = &ref
	ap.Venue = &venue
	ap.Match = &match
	return &ap, nil
}

func appointmentOwner(ap models.Appointment) string {
	if ap.Referee == nil {
		return ""
	}
	return ap.Referee.RefereeID
}

// ListAppointments returns every appointment for staff and only the caller's
// own appointments for everyone else.
func ListAppointments(c *fiber.Ctx) error {
	rows, err := database.DB.QueryContext(c.Context(), appointmentSelect+" ORDER BY ap.appointment_date, ap.appointment_time")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointments"})
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		ap, err := scanAppointmentRow(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointments"})
		}
		appointments = append(appointments, *ap)
	}

	req, err := requesterFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointments"})
	}
	return c.JSON(visibility.Filter(req, appointments, appointmentOwner))
}

// scopedAppointment loads an appointment for the requester, hiding rows the
// caller does not own behind a 404 so the write paths scope the same way the
// read path does.
func scopedAppointment(c *fiber.Ctx) (*models.Appointment, error) {
	ap, err := scanAppointmentRow(database.DB.QueryRow(appointmentSelect+` WHERE ap.appointment_id = $1`, c.Params("id")))
	if err != nil {
		return nil, err
	}
	req, err := requesterFromCtx(c)
	if err != nil {
		return nil, err
	}
	if !visibility.Allowed(req, appointmentOwner(*ap)) {
		return nil, sql.ErrNoRows
	}
	return ap, nil
}

func GetAppointment(c *fiber.Ctx) error {
	ap, err := scopedAppointment(c)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointment"})
	}
	return c.JSON(ap)
}

func CreateAppointment(c *fiber.Ctx) error {
	var in models.AppointmentInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if in.Status == "" {
		in.Status = models.StatusUpcoming
	}

	_, err := database.DB.Exec(`
		INSERT INTO appointments (appointment_id, referee_id, venue_id, match_id, distance, appointment_date, appointment_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, in.AppointmentID, in.RefereeID, in.VenueID, in.MatchID, in.Distance, in.AppointmentDate, in.AppointmentTime, in.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Appointment already exists or invalid data"})
	}

	ap, err := scanAppointmentRow(database.DB.QueryRow(appointmentSelect+` WHERE ap.appointment_id = $1`, in.AppointmentID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointment"})
	}
	return c.Status(fiber.StatusCreated).JSON(ap)
}

func UpdateAppointment(c *fiber.Ctx) error {
	var in models.AppointmentInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if _, err := scopedAppointment(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointment"})
	}

	result, err := database.DB.Exec(`
		UPDATE appointments
		SET referee_id = $1, venue_id = $2, match_id = $3, distance = $4,
		    appointment_date = $5, appointment_time = $6, status = $7
		WHERE appointment_id = $8
	`, in.RefereeID, in.VenueID, in.MatchID, in.Distance,
		in.AppointmentDate, in.AppointmentTime, in.Status, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment data"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}

	ap, err := scanAppointmentRow(database.DB.QueryRow(appointmentSelect+` WHERE ap.appointment_id = $1`, c.Params("id")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointment"})
	}
	return c.JSON(ap)
}

func DeleteAppointment(c *fiber.Ctx) error {
	if _, err := scopedAppointment(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointment"})
	}

	result, err := database.DB.Exec(`DELETE FROM appointments WHERE appointment_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete appointment"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func AcceptAppointment(c *fiber.Ctx) error {
	return appointmentStatusChange(c, schedulingService().Accept)
}

func DeclineAppointment(c *fiber.Ctx) error {
	return appointmentStatusChange(c, schedulingService().Decline)
}

func appointmentStatusChange(c *fiber.Ctx, change func(ctx context.Context, id string) (*models.Appointment, error)) error {
	if _, err := scopedAppointment(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load appointment"})
	}

	ap, err := change(c.Context(), c.Params("id"))
	if errors.Is(err, scheduling.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update appointment"})
	}
	return c.JSON(ap)
}
