package mailer

import (
	"errors"
	"os"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var errMissingAPIKey = errors.New("SENDGRID_API_KEY is not set")

func product() hermes.Hermes {
	return hermes.Hermes{
		Product: hermes.Product{
			Name: "Linkup",
			Link: os.Getenv("APP_URL"),
		},
	}
}

// SendResetPassword emails a password-reset link carrying the token.
func SendResetPassword(toEmail, token string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return errMissingAPIKey
	}

	resetURL := os.Getenv("APP_URL") + "/password/reset?token=" + token

	email := hermes.Email{
		Body: hermes.Body{
			Intros: []string{
				"You requested a password reset for your Linkup account.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to choose a new password:",
					Button: hermes.Button{
						Text: "Reset password",
						Link: resetURL,
					},
				},
			},
			Outros: []string{
				"If you did not request a reset, you can safely ignore this email.",
			},
		},
	}

	h := product()
	htmlBody, err := h.GenerateHTML(email)
	if err != nil {
		return err
	}
	textBody, err := h.GeneratePlainText(email)
	if err != nil {
		return err
	}

	from := mail.NewEmail("Linkup", os.Getenv("MAIL_FROM"))
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, "Reset your Linkup password", to, textBody, htmlBody)

	client := sendgrid.NewSendClient(apiKey)
	_, err = client.Send(message)
	return err
}
