package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/rs/zerolog/log"

	"github.com/ErkinN/go-crm/configs"
)

// ErrNotConfigured is returned when the relevant notifier credentials are
// absent from the environment. Callers treat it as "notifications disabled".
var ErrNotConfigured = errors.New("notifier is not configured")

func SendWelcomeEmail(recipientEmail string, firstName string) error {
	cfg := config.LoadEmailConfig()

	if cfg.SenderEmail == "" || cfg.AWSAccessKeyID == "" {
		return ErrNotConfigured
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {

		log.Err(err).Str("recipient", recipientEmail).Msg("Failed to load AWS SDK config for welcome email")
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	subject := "Welcome - Your Customer Record Has Been Created"

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Your customer record has been created in our system.</p>
            <p>Keep the password you supplied safe: it is required to edit or remove your record.</p>
            <p>Best regards,</p>
            <p>The CRM Team</p>
        </body>
        </html>`, firstName)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nYour customer record has been created in our system.\n\n"+
			"Keep the password you supplied safe: it is required to edit or remove your record.\n\n"+
			"Best regards,\nThe CRM Team",
		firstName)

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Err(err).Str("recipient", recipientEmail).Msg("Failed to send welcome email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("recipient", recipientEmail).Msg("Welcome email sent successfully")
	return nil
}
