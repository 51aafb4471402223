package mail

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func SendPasswordResetEmail(to, resetURL string) error {
	fromEmail := os.Getenv("EMAIL_FROM") // e.g., no-reply@refassign.com
	apiKey := os.Getenv("SENDGRID_API_KEY")

	subject := "Password Reset Request"
	plainTextContent := fmt.Sprintf("Click the following link to reset your password: %s", resetURL)
	htmlContent := fmt.Sprintf(`
        <html>
        <body>
            <h2>Password Reset</h2>
            <p>We received a request to reset the password for your referee account.</p>
            <p><a href="%s">Reset Password</a></p>
            <p>The link expires in 24 hours. If you didn't request this, you can safely ignore this email.</p>
        </body>
        </html>
    `, resetURL)

	from := mail.NewEmail("Referee Appointments", fromEmail)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: %d - %s", response.StatusCode, response.Body)
	}

	return nil
}
