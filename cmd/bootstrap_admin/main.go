// Command bootstrap_admin creates a staff user together with its admin
// referee profile, for standing up a fresh deployment.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"refassign-backend/database"
	"refassign-backend/models"
)

func main() {
	if os.Getenv("RENDER") == "" {
		_ = godotenv.Load()
	}

	var (
		username  = flag.String("username", "", "Login username for the admin account")
		email     = flag.String("email", "", "Email address for the admin account")
		password  = flag.String("password", "", "Initial password for the admin account")
		firstName = flag.String("first-name", "Admin", "First name on the referee profile")
		lastName  = flag.String("last-name", "User", "Last name on the referee profile")
		location  = flag.String("location", "Melbourne", "Location on the referee profile")
	)
	flag.Parse()
	validateFlags(*username, *email, *password)

	database.ConnectDB()

	var exists bool
	err := database.DB.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		*username, *email,
	).Scan(&exists)
	if err != nil {
		log.Fatalf("check existing user: %v", err)
	}
	if exists {
		log.Fatalf("a user with username %q or email %q already exists", *username, *email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 14)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	tx, err := database.DB.Begin()
	if err != nil {
		log.Fatalf("begin transaction: %v", err)
	}
	defer tx.Rollback()

	var userID int
	err = tx.QueryRow(`
		INSERT INTO users (username, email, password_hash, is_staff)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id
	`, *username, *email, string(hash)).Scan(&userID)
	if err != nil {
		log.Fatalf("insert user: %v", err)
	}

	refereeID := fmt.Sprintf("ADMIN_%d", userID)
	_, err = tx.Exec(`
		INSERT INTO referees (referee_id, user_id, first_name, last_name, email, level, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, refereeID, userID, *firstName, *lastName, *email, models.LevelFour, *location)
	if err != nil {
		log.Fatalf("insert referee profile: %v", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("commit: %v", err)
	}

	fmt.Printf("Created staff user %d with referee profile %s\n", userID, refereeID)
}

func validateFlags(username, email, password string) {
	missing := []string{}
	if username == "" {
		missing = append(missing, "--username")
	}
	if email == "" {
		missing = append(missing, "--email")
	}
	if password == "" {
		missing = append(missing, "--password")
	}
	if len(missing) > 0 {
		log.Fatalf("missing required flags: %v", missing)
	}
}
