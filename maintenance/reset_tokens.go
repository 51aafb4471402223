// Package maintenance runs the scheduled housekeeping jobs.
package maintenance

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"refassign-backend/database"
)

// PurgeExpiredResetTokens clears password-reset tokens older than the 24 hour
// validity window so stale links stop matching anything.
func PurgeExpiredResetTokens() (int64, error) {
	result, err := database.DB.Exec(`
		UPDATE password_resets
		SET reset_token = NULL, token_created = NULL
		WHERE reset_token IS NOT NULL AND token_created < NOW() - INTERVAL '24 hours'
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// StartScheduler wires the purge job. Runs nightly by default; override with
// RESET_PURGE_CRON (standard 5-field cron, server local time).
func StartScheduler() *cron.Cron {
	spec := os.Getenv("RESET_PURGE_CRON")
	if spec == "" {
		spec = "0 3 * * *"
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		n, err := PurgeExpiredResetTokens()
		if err != nil {
			log.Println("purge expired reset tokens:", err)
			return
		}
		if n > 0 {
			log.Printf("purged %d expired password reset tokens", n)
		}
	})
	if err != nil {
		log.Fatalf("invalid RESET_PURGE_CRON %q: %v", spec, err)
	}
	c.Start()
	return c
}
