package controllers

import (
	"database/sql"
	"errors"
	"time"

	"refassign-backend/database"
	"refassign-backend/visibility"

	"github.com/gofiber/fiber/v2"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// requesterFromCtx builds the Requester for the authenticated caller,
// resolving the referee profile linked to the token's user. A user without a
// profile is a valid requester with no referee id; any other lookup failure
// is returned so the handler fails instead of silently narrowing the scope.
func requesterFromCtx(c *fiber.Ctx) (visibility.Requester, error) {
	userID, _ := c.Locals("user_id").(int)
	isStaff, _ := c.Locals("is_staff").(bool)

	return requesterFor(userID, isStaff, func(id int) (string, error) {
		var refereeID string
		err := database.DB.QueryRow(`SELECT referee_id FROM referees WHERE user_id = $1`, id).Scan(&refereeID)
		return refereeID, err
	})
}

func requesterFor(userID int, isStaff bool, refereeIDByUser func(int) (string, error)) (visibility.Requester, error) {
	req := visibility.Requester{UserID: userID, IsStaff: isStaff}
	refereeID, err := refereeIDByUser(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return req, nil
	}
	if err != nil {
		return visibility.Requester{}, err
	}
	req.RefereeID = refereeID
	return req, nil
}

// today is the server-local calendar day. Availability and match dates are
// local-calendar values, so "upcoming" cuts off on the same clock they are
// entered against.
func today() string {
	return time.Now().Format("2006-01-02")
}

func dateString(v sql.NullTime) string {
	if !v.Valid {
		return ""
	}
	return v.Time.Format("2006-01-02")
}

// clock trims a TIME column value to HH:MM.
func clock(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	if len(s) > 5 {
		s = s[:5]
	}
	return &s
}

func optString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
