package controllers

import (
	"context"
	"database/sql"
	"errors"

	"refassign-backend/availability"
	"refassign-backend/database"
	"refassign-backend/models"
	"refassign-backend/scheduling"

	"github.com/gofiber/fiber/v2"
)

const matchSelect = `
	SELECT m.match_id, m.match_date, m.match_time, m.level,
	       r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
	       r.last_name, r.gender, r.age, r.location, r.zip_code,
	       r.phone_number, r.experience_years, r.level,
	       hc.club_id, hc.club_name, hc.contact_name, hc.contact_phone_number,
	       hv.venue_id, hv.venue_name, hv.capacity, hv.location,
	       ac.club_id, ac.club_name, ac.contact_name, ac.contact_phone_number,
	       av.venue_id, av.venue_name, av.capacity, av.location,
	       v.venue_id, v.venue_name, v.capacity, v.location
	FROM matches m
	JOIN referees r ON r.referee_id = m.referee_id
	LEFT JOIN users u ON u.id = r.user_id
	JOIN clubs hc ON hc.club_id = m.home_club_id
	JOIN venues hv ON hv.venue_id = hc.home_venue_id
	JOIN clubs ac ON ac.club_id = m.away_club_id
	JOIN venues av ON av.venue_id = ac.home_venue_id
	JOIN venues v ON v.venue_id = m.venue_id`

func scanMatchRow(s rowScanner) (*models.Match, error) {
	var (
		m                        models.Match
		ref                      models.Referee
		homeClub, awayClub       models.Club
		homeVenue, awayVenue, mv models.Venue
		matchDate                sql.NullTime
		matchTime, zip           sql.NullString
	)
	if err := s.Scan(
		&m.MatchID, &matchDate, &matchTime, &m.Level,
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		&homeClub.ClubID, &homeClub.ClubName, &homeClub.ContactName, &homeClub.ContactPhoneNumber,
		&homeVenue.VenueID, &homeVenue.VenueName, &homeVenue.Capacity, &homeVenue.Location,
		&awayClub.ClubID, &awayClub.ClubName, &awayClub.ContactName, &awayClub.ContactPhoneNumber,
		&awayVenue.VenueID, &awayVenue.VenueName, &awayVenue.Capacity, &awayVenue.Location,
		&mv.VenueID, &mv.VenueName, &mv.Capacity, &mv.Location,
	); err != nil {
		return nil, err
	}

	ref.ZipCode = optString(zip)
	m.MatchDate = dateString(matchDate)
	m.MatchTime = clock(matchTime)
	homeClub.HomeVenue = &homeVenue
	awayClub.HomeVenue = &awayVenue
	m.Referee = &ref
	m.HomeClub = &homeClub
	m.AwayClub = &awayClub
	m.Venue = &mv
	return &m, nil
}

func queryMatches(ctx context.Context, where string, args ...any) ([]models.Match, error) {
	rows, err := database.DB.QueryContext(ctx, matchSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		m, err := scanMatchRow(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func ListMatches(c *fiber.Ctx) error {
	matches, err := queryMatches(c.Context(), " ORDER BY m.match_date, m.match_id")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load matches"})
	}
	return c.JSON(matches)
}

func GetMatch(c *fiber.Ctx) error {
	m, err := scanMatchRow(database.DB.QueryRow(matchSelect+` WHERE m.match_id = $1`, c.Params("id")))
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Match not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load match"})
	}
	return c.JSON(m)
}

func CreateMatch(c *fiber.Ctx) error {
	var in models.MatchInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	_, err := database.DB.Exec(`
		INSERT INTO matches (match_id, referee_id, home_club_id, away_club_id, venue_id, match_date, match_time, level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, in.MatchID, in.RefereeID, in.HomeClubID, in.AwayClubID, in.VenueID, in.MatchDate, in.MatchTime, in.Level)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Match already exists or invalid data"})
	}

	m, err := scanMatchRow(database.DB.QueryRow(matchSelect+` WHERE m.match_id = $1`, in.MatchID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load match"})
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func UpdateMatch(c *fiber.Ctx) error {
	var in models.MatchInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	result, err := database.DB.Exec(`
		UPDATE matches
		SET referee_id = $1, home_club_id = $2, away_club_id = $3, venue_id = $4,
		    match_date = $5, match_time = $6, level = $7
		WHERE match_id = $8
	`, in.RefereeID, in.HomeClubID, in.AwayClubID, in.VenueID, in.MatchDate, in.MatchTime, in.Level, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid match data"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Match not found"})
	}

	m, err := scanMatchRow(database.DB.QueryRow(matchSelect+` WHERE m.match_id = $1`, c.Params("id")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load match"})
	}
	return c.JSON(m)
}

func DeleteMatch(c *fiber.Ctx) error {
	result, err := database.DB.Exec(`DELETE FROM matches WHERE match_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Match is still referenced"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Match not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AvailableReferees lists the referees eligible for assignment on a date,
// optionally restricted to a minimum level.
func AvailableReferees(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date parameter is required"})
	}

	svc := scheduling.NewService(scheduling.NewPostgresRepository(database.DB))
	referees, err := svc.EligibleReferees(c.Context(), date, c.Query("level"))
	if err != nil {
		var verr *availability.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referees"})
	}
	return c.JSON(referees)
}
