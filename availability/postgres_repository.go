package availability

import (
	"context"
	"database/sql"
	"fmt"

	"refassign-backend/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec Record) (bool, error) {
	var created bool
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO availability (referee_id, date, available_type, weekday)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (referee_id, date)
		DO UPDATE SET available_type = EXCLUDED.available_type, weekday = EXCLUDED.weekday
		RETURNING (xmax = 0)
	`, rec.RefereeID, rec.Date, rec.AvailableType, rec.Weekday).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert availability referee=%s date=%s: %w", rec.RefereeID, rec.Date, err)
	}
	return created, nil
}

func (r *PostgresRepository) DatesByType(ctx context.Context, refereeID, availableType string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date FROM availability
		WHERE referee_id = $1 AND available_type = $2
		ORDER BY date
	`, refereeID, availableType)
	if err != nil {
		return nil, fmt.Errorf("query availability dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d sql.NullTime
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan availability date: %w", err)
		}
		if d.Valid {
			dates = append(dates, d.Time.Format("2006-01-02"))
		}
	}
	return dates, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context, refereeID string) ([]Record, error) {
	query := `
		SELECT a.available_id, a.date, a.start_time, a.end_time, a.duration,
		       a.available_type, a.weekday,
		       r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
		       r.last_name, r.gender, r.age, r.location, r.zip_code,
		       r.phone_number, r.experience_years, r.level
		FROM availability a
		JOIN referees r ON r.referee_id = a.referee_id
		LEFT JOIN users u ON u.id = r.user_id`
	args := []any{}
	if refereeID != "" {
		query += ` WHERE a.referee_id = $1`
		args = append(args, refereeID)
	}
	query += ` ORDER BY a.date, a.available_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			ref                models.Referee
			date               sql.NullTime
			startTime, endTime sql.NullString
			duration           sql.NullInt64
			weekday, zip       sql.NullString
			out                Record
		)
		if err := rows.Scan(
			&out.AvailableID, &date, &startTime, &endTime, &duration,
			&out.AvailableType, &weekday,
			&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
			&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
			&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
		); err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		if zip.Valid {
			ref.ZipCode = &zip.String
		}
		if date.Valid {
			out.Date = date.Time.Format("2006-01-02")
		}
		out.StartTime = clockString(startTime)
		out.EndTime = clockString(endTime)
		if duration.Valid {
			d := int(duration.Int64)
			out.Duration = &d
		}
		if weekday.Valid {
			w := weekday.String
			out.Weekday = &w
		}
		out.RefereeID = ref.RefereeID
		out.Referee = &ref
		records = append(records, out)
	}
	return records, rows.Err()
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
