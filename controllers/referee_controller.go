package controllers

import (
	"database/sql"
	"errors"
	"strconv"

	"refassign-backend/database"
	"refassign-backend/models"

	"github.com/gofiber/fiber/v2"
)

const refereeSelect = `
	SELECT DISTINCT r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
	       r.last_name, r.gender, r.age, r.location, r.zip_code,
	       r.phone_number, r.experience_years, r.level
	FROM referees r
	LEFT JOIN users u ON u.id = r.user_id`

func scanRefereeRow(s rowScanner) (*models.Referee, error) {
	var (
		ref models.Referee
		zip sql.NullString
	)
	if err := s.Scan(
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
	); err != nil {
		return nil, err
	}
	ref.ZipCode = optString(zip)
	return &ref, nil
}

type RefereeInput struct {
	RefereeID       string  `json:"referee_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Gender          string  `json:"gender"`
	DateOfBirth     *string `json:"date_of_birth"`
	Age             int     `json:"age"`
	Location        string  `json:"location"`
	ZipCode         *string `json:"zip_code"`
	Email           string  `json:"email"`
	PhoneNumber     string  `json:"phone_number"`
	ExperienceYears int     `json:"experience_years"`
	Level           string  `json:"level"`
}

// ListReferees supports the assignment screen's filters: level, minimum age,
// minimum experience, and availability=true for "available today".
func ListReferees(c *fiber.Ctx) error {
	query := refereeSelect
	where := ""
	args := []any{}

	addClause := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	if level := c.Query("level"); level != "" {
		args = append(args, level)
		addClause("r.level = $" + strconv.Itoa(len(args)))
	}
	if minAge := c.Query("minAge"); minAge != "" {
		args = append(args, minAge)
		addClause("r.age >= $" + strconv.Itoa(len(args)))
	}
	if minExperience := c.Query("minExperience"); minExperience != "" {
		args = append(args, minExperience)
		addClause("r.experience_years >= $" + strconv.Itoa(len(args)))
	}
	if c.Query("availability") != "" {
		args = append(args, today())
		addClause(`EXISTS (
			SELECT 1 FROM availability a
			WHERE a.referee_id = r.referee_id AND a.available_type = 'A' AND a.date = $` + strconv.Itoa(len(args)) + `)`)
	}

	rows, err := database.DB.Query(query+where+" ORDER BY r.referee_id", args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referees"})
	}
	defer rows.Close()

	referees := []models.Referee{}
	for rows.Next() {
		ref, err := scanRefereeRow(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referees"})
		}
		referees = append(referees, *ref)
	}
	return c.JSON(referees)
}

func GetReferee(c *fiber.Ctx) error {
	ref, err := scanRefereeRow(database.DB.QueryRow(
		refereeSelect+` WHERE r.referee_id = $1`, c.Params("id")))
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Referee not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referee"})
	}
	return c.JSON(ref)
}

func CreateReferee(c *fiber.Ctx) error {
	var in RefereeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if in.RefereeID == "" {
		in.RefereeID = newRefereeID()
	}
	if in.Level == "" {
		in.Level = models.LevelTrainee
	}
	if in.Gender == "" {
		in.Gender = "M"
	}

	_, err := database.DB.Exec(`
		INSERT INTO referees (referee_id, first_name, last_name, gender, date_of_birth,
		                      age, location, zip_code, email, phone_number, experience_years, level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, in.RefereeID, in.FirstName, in.LastName, in.Gender, in.DateOfBirth,
		in.Age, in.Location, in.ZipCode, in.Email, in.PhoneNumber, in.ExperienceYears, in.Level)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Referee already exists or invalid data"})
	}

	ref, err := scanRefereeRow(database.DB.QueryRow(refereeSelect+` WHERE r.referee_id = $1`, in.RefereeID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referee"})
	}
	return c.Status(fiber.StatusCreated).JSON(ref)
}

func UpdateReferee(c *fiber.Ctx) error {
	var in RefereeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	result, err := database.DB.Exec(`
		UPDATE referees
		SET first_name = $1, last_name = $2, gender = $3, date_of_birth = $4,
		    age = $5, location = $6, zip_code = $7, email = $8,
		    phone_number = $9, experience_years = $10, level = $11
		WHERE referee_id = $12
	`, in.FirstName, in.LastName, in.Gender, in.DateOfBirth,
		in.Age, in.Location, in.ZipCode, in.Email,
		in.PhoneNumber, in.ExperienceYears, in.Level, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid referee data"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Referee not found"})
	}

	ref, err := scanRefereeRow(database.DB.QueryRow(refereeSelect+` WHERE r.referee_id = $1`, c.Params("id")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referee"})
	}
	return c.JSON(ref)
}

func DeleteReferee(c *fiber.Ctx) error {
	result, err := database.DB.Exec(`DELETE FROM referees WHERE referee_id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Referee is still referenced"})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Referee not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
