package controllers

import (
	"database/sql"
	"errors"

	"refassign-backend/database"
	"refassign-backend/models"
	"refassign-backend/visibility"

	"github.com/gofiber/fiber/v2"
)

const notificationSelect = `
	SELECT n.notification_id, n.notification_type, n.date,
	       r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
	       r.last_name, r.gender, r.age, r.location, r.zip_code,
	       r.phone_number, r.experience_years, r.level,
	       m.match_id, m.match_date, m.match_time, m.level
	FROM notifications n
	JOIN referees r ON r.referee_id = n.referee_id
	LEFT JOIN users u ON u.id = r.user_id
	JOIN matches m ON m.match_id = n.match_id`

func scanNotificationRow(s rowScanner) (*models.Notification, error) {
	var (
		n         models.Notification
		ref       models.Referee
		match     models.Match
		date      sql.NullTime
		matchDate sql.NullTime
		matchTime sql.NullString
		zip       sql.NullString
	)
	if err := s.Scan(
		&n.NotificationID, &n.NotificationType, &date,
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		&match.MatchID, &matchDate, &matchTime, &match.Level,
	); err != nil {
		return nil, err
	}
	ref.ZipCode = optString(zip)
	n.Date = dateString(date)
	match.MatchDate = dateString(matchDate)
	match.MatchTime = clock(matchTime)
	n.Referee = &ref
	n.RefereeID = ref.RefereeID
	n.Match = &match
	return &n, nil
}

func ListNotifications(c *fiber.Ctx) error {
	rows, err := database.DB.QueryContext(c.Context(), notificationSelect+" ORDER BY n.date DESC, n.notification_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n, err := scanNotificationRow(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
		}
		notifications = append(notifications, *n)
	}

	req, err := requesterFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}
	scoped := visibility.Filter(req, notifications, func(n models.Notification) string {
		return n.RefereeID
	})
	return c.JSON(scoped)
}

// scopedNotification loads a notification, hiding rows the requester does not
// own behind a 404.
func scopedNotification(c *fiber.Ctx) (*models.Notification, error) {
	n, err := scanNotificationRow(database.DB.QueryRow(notificationSelect+` WHERE n.notification_id = $1`, c.Params("id")))
	if err != nil {
		return nil, err
	}
	req, err := requesterFromCtx(c)
	if err != nil {
		return nil, err
	}
	if !visibility.Allowed(req, n.RefereeID) {
		return nil, sql.ErrNoRows
	}
	return n, nil
}

func GetNotification(c *fiber.Ctx) error {
	n, err := scopedNotification(c)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notification"})
	}
	return c.JSON(n)
}

type NotificationInput struct {
	NotificationID   string `json:"notification_id"`
	RefereeID        string `json:"referee"`
	MatchID          string `json:"match"`
	NotificationType string `json:"notification_type"`
	Date             string `json:"date"`
}

func CreateNotification(c *fiber.Ctx) error {
	var in NotificationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	_, err := database.DB.Exec(`
		INSERT INTO notifications (notification_id, referee_id, match_id, notification_type, date)
		VALUES ($1, $2, $3, $4, $5)
	`, in.NotificationID, in.RefereeID, in.MatchID, in.NotificationType, in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Notification already exists or invalid data"})
	}

	n, err := scanNotificationRow(database.DB.QueryRow(notificationSelect+` WHERE n.notification_id = $1`, in.NotificationID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notification"})
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func DeleteNotification(c *fiber.Ctx) error {
	if _, err := scopedNotification(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notification"})
	}

	result, err := database.DB.Exec(`DELETE FROM notifications WHERE notification_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete notification"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
