package scheduling

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"refassign-backend/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SetStatus(ctx context.Context, appointmentID, status string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE appointments SET status = $1 WHERE appointment_id = $2
	`, status, appointmentID)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var (
		ap        models.Appointment
		ref       models.Referee
		venue     models.Venue
		match     models.Match
		apDate    sql.NullTime
		apTime    sql.NullString
		zip       sql.NullString
		matchDate sql.NullTime
		matchTime sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
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
		JOIN matches m ON m.match_id = ap.match_id
		WHERE ap.appointment_id = $1
	`, appointmentID).Scan(
		&ap.AppointmentID, &ap.Distance, &apDate, &apTime, &ap.Status,
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		&venue.VenueID, &venue.VenueName, &venue.Capacity, &venue.Location,
		&match.MatchID, &matchDate, &matchTime, &match.Level,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment %s: %w", appointmentID, err)
	}

	if zip.Valid {
		ref.ZipCode = &zip.String
	}
	if apDate.Valid {
		ap.AppointmentDate = apDate.Time.Format("2006-01-02")
	}
	ap.AppointmentTime = clockString(apTime)
	if matchDate.Valid {
		match.MatchDate = matchDate.Time.Format("2006-01-02")
	}
	match.MatchTime = clockString(matchTime)

	ap.Referee = &ref
	ap.Venue = &venue
	ap.Match = &match
	return &ap, nil
}

func (r *PostgresRepository) EligibleReferees(ctx context.Context, date, minLevel string) ([]models.Referee, error) {
	query := `
		SELECT DISTINCT r.referee_id, COALESCE(u.username, ''), r.email,
		       r.first_name, r.last_name, r.gender, r.age, r.location,
		       r.zip_code, r.phone_number, r.experience_years, r.level
		FROM referees r
		JOIN availability a ON a.referee_id = r.referee_id
		LEFT JOIN users u ON u.id = r.user_id
		WHERE a.date = $1 AND a.available_type = 'A'`
	args := []any{date}
	if minLevel != "" {
		query += ` AND r.level >= $2`
		args = append(args, minLevel)
	}
	query += ` ORDER BY r.referee_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query eligible referees: %w", err)
	}
	defer rows.Close()

	referees := []models.Referee{}
	for rows.Next() {
		var (
			ref models.Referee
			zip sql.NullString
		)
		if err := rows.Scan(
			&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
			&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
			&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		); err != nil {
			return nil, fmt.Errorf("scan eligible referee: %w", err)
		}
		if zip.Valid {
			ref.ZipCode = &zip.String
		}
		referees = append(referees, ref)
	}
	return referees, rows.Err()
}

// clockString trims a TIME column value to HH:MM.
func clockString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	if len(s) > 5 {
		s = s[:5]
	}
	return &s
}
