package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"refassign-backend/database"
	"refassign-backend/mail"
	"refassign-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func generateResetToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newRefereeID() string {
	return "REF_" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func generateToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func refereeByUserID(userID int) (*models.Referee, error) {
	var (
		ref models.Referee
		zip sql.NullString
	)
	err := database.DB.QueryRow(`
		SELECT r.referee_id, COALESCE(u.username, ''), r.email, r.first_name,
		       r.last_name, r.gender, r.age, r.location, r.zip_code,
		       r.phone_number, r.experience_years, r.level
		FROM referees r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
	`, userID).Scan(
		&ref.RefereeID, &ref.Username, &ref.Email, &ref.FirstName,
		&ref.LastName, &ref.Gender, &ref.Age, &ref.Location, &zip,
		&ref.PhoneNumber, &ref.ExperienceYears, &ref.Level,
	)
	if err != nil {
		return nil, err
	}
	if zip.Valid {
		ref.ZipCode = &zip.String
	}
	return &ref, nil
}

func Login(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var missing []string
	if data.Username == "" {
		missing = append(missing, "username")
	}
	if data.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: " + strings.Join(missing, ", "),
		})
	}

	var user models.User
	err := database.DB.QueryRow(`
		SELECT id, username, email, password_hash, is_staff FROM users WHERE username = $1
	`, data.Username).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsStaff)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No account found with this username"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
	}

	referee, err := refereeByUserID(user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		if !user.IsStaff {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No referee profile found for this user"})
		}
		// Staff logging in for the first time get an admin profile.
		referee, err = bootstrapAdminReferee(user)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}

	tokenString, err := generateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": tokenString, "user": referee})
}

func bootstrapAdminReferee(user models.User) (*models.Referee, error) {
	_, err := database.DB.Exec(`
		INSERT INTO referees (referee_id, user_id, first_name, last_name, email, level, age, experience_years, location)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 'Melbourne')
	`, fmt.Sprintf("ADMIN_%d", user.ID), user.ID, "Admin", "User", user.Email, models.LevelFour)
	if err != nil {
		return nil, fmt.Errorf("bootstrap admin referee: %w", err)
	}
	return refereeByUserID(user.ID)
}

func Register(c *fiber.Ctx) error {
	var data struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		PhoneNumber     string `json:"phone_number"`
		Age             int    `json:"age"`
		Location        string `json:"location"`
		Gender          string `json:"gender"`
		Level           string `json:"level"`
		ExperienceYears int    `json:"experience_years"`
	}
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var missing []string
	required := []struct {
		value string
		name  string
	}{
		{data.Username, "Username"},
		{data.Email, "Email"},
		{data.Password, "Password"},
		{data.FirstName, "First name"},
		{data.LastName, "Last name"},
		{data.PhoneNumber, "Phone number"},
		{data.Location, "Location"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if data.Age == 0 {
		missing = append(missing, "Age")
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "The following fields are required: " + strings.Join(missing, ", "),
		})
	}

	var exists bool
	if err := database.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, data.Username).Scan(&exists); err == nil && exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This username is already taken. Please choose a different username.",
		})
	}
	if err := database.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, data.Email).Scan(&exists); err == nil && exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "An account with this email already exists.",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), 14)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}

	if data.Level == "" {
		data.Level = models.LevelOne
	}
	if data.Gender == "" {
		data.Gender = "M"
	}

	// User and referee profile are created together or not at all.
	tx, err := database.DB.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed. Please try again."})
	}
	defer tx.Rollback()

	var user models.User
	user.Username = data.Username
	user.Email = data.Email
	err = tx.QueryRow(`
		INSERT INTO users (username, email, password_hash, is_staff)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id
	`, data.Username, data.Email, string(hash)).Scan(&user.ID)
	if err != nil {
		log.Println("register user insert:", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Registration failed. Please try again."})
	}

	refereeID := newRefereeID()
	_, err = tx.Exec(`
		INSERT INTO referees (referee_id, user_id, first_name, last_name, email,
		                      phone_number, level, experience_years, gender, age, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, refereeID, user.ID, data.FirstName, data.LastName, data.Email,
		data.PhoneNumber, data.Level, data.ExperienceYears, data.Gender, data.Age, data.Location)
	if err != nil {
		log.Println("register referee insert:", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Registration failed. Please try again."})
	}

	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed. Please try again."})
	}

	referee, err := refereeByUserID(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed. Please try again."})
	}

	tokenString, err := generateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": tokenString, "user": referee})
}

func CurrentUser(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int)

	referee, err := refereeByUserID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No referee profile found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load profile"})
	}
	return c.JSON(referee)
}

func RequestPasswordReset(c *fiber.Ctx) error {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if data.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	var userID int
	err := database.DB.QueryRow(`SELECT id FROM users WHERE email = $1`, data.Email).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No user found with this email address"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Password reset failed"})
	}

	token := generateResetToken()
	_, err = database.DB.Exec(`
		INSERT INTO password_resets (user_id, reset_token, token_created)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET reset_token = EXCLUDED.reset_token, token_created = EXCLUDED.token_created
	`, userID, token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Password reset failed"})
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", os.Getenv("FRONTEND_URL"), token)
	if err := mail.SendPasswordResetEmail(data.Email, resetURL); err != nil {
		log.Printf("Failed to send password reset email: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send reset email"})
	}

	return c.JSON(fiber.Map{"message": "Password reset instructions sent to your email"})
}

func ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")

	var data struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var (
		userID       int
		tokenCreated sql.NullTime
	)
	err := database.DB.QueryRow(`
		SELECT user_id, token_created FROM password_resets WHERE reset_token = $1
	`, token).Scan(&userID, &tokenCreated)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reset token"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Password reset failed"})
	}

	if !tokenCreated.Valid || tokenCreated.Time.Before(time.Now().Add(-24*time.Hour)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password reset token has expired"})
	}

	if data.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password is required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), 14)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Password reset failed"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, string(hash), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Password reset failed"})
	}
	if _, err := tx.Exec(`UPDATE password_resets SET reset_token = NULL, token_created = NULL WHERE user_id = $1`, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Password reset failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Password reset failed"})
	}

	return c.JSON(fiber.Map{"message": "Password has been reset successfully"})
}
