// Package mail delivers account emails through AWS SES.
package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/rs/zerolog"
)

// SESMailer sends account emails via AWS SES. Links in the emails point at
// the frontend, which forwards the embedded token back to the API.
type SESMailer struct {
	client  *ses.Client
	from    string
	siteURL string
	logger  zerolog.Logger
}

func NewSESMailer(client *ses.Client, from, siteURL string, logger zerolog.Logger) *SESMailer {
	return &SESMailer{
		client:  client,
		from:    from,
		siteURL: siteURL,
		logger:  logger.With().Str("component", "mailer").Logger(),
	}
}

func (m *SESMailer) SendVerificationEmail(ctx context.Context, email, name, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.siteURL, token)

	html := fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2>Welcome to Propamit, %s</h2>
<p>Thanks for creating an account. Please confirm your email address to finish setting up:</p>
<p><a href="%s" style="display:inline-block;background:#1a56db;color:#fff;padding:12px 24px;border-radius:4px;text-decoration:none">Verify email address</a></p>
<p>Or copy this link into your browser:<br><code>%s</code></p>
<p>The link expires in 24 hours. If you did not create this account you can ignore this email.</p>
</div>`, name, link, link)

	text := fmt.Sprintf(`Welcome to Propamit, %s

Thanks for creating an account. Please confirm your email address to finish setting up:

%s

The link expires in 24 hours. If you did not create this account you can ignore this email.
`, name, link)

	return m.send(ctx, email, "Verify your Propamit account", html, text)
}

func (m *SESMailer) SendWelcomeEmail(ctx context.Context, email, name string) error {
	html := fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2>Your account is ready, %s</h2>
<p>Your email address is verified and your Propamit account is active.</p>
<p>You can now sign in at <a href="%s/login">%s/login</a> to manage your vehicle documents and applications.</p>
</div>`, name, m.siteURL, m.siteURL)

	text := fmt.Sprintf(`Your account is ready, %s

Your email address is verified and your Propamit account is active.
Sign in at %s/login to manage your vehicle documents and applications.
`, name, m.siteURL)

	return m.send(ctx, email, "Your Propamit account is ready", html, text)
}

func (m *SESMailer) SendResetEmail(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.siteURL, token)

	html := fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2>Reset your password</h2>
<p>We received a request to reset the password for your Propamit account.</p>
<p><a href="%s" style="display:inline-block;background:#1a56db;color:#fff;padding:12px 24px;border-radius:4px;text-decoration:none">Choose a new password</a></p>
<p>Or copy this link into your browser:<br><code>%s</code></p>
<p>The link expires in 1 hour. If you did not request a reset, no action is needed.</p>
</div>`, link, link)

	text := fmt.Sprintf(`Reset your password

We received a request to reset the password for your Propamit account:

%s

The link expires in 1 hour. If you did not request a reset, no action is needed.
`, link)

	return m.send(ctx, email, "Reset your Propamit password", html, text)
}

func (m *SESMailer) send(ctx context.Context, to, subject, html, text string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(html),
				},
				Text: &types.Content{
					Data: aws.String(text),
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	m.logger.Debug().
		Str("to", to).
		Str("subject", subject).
		Str("message_id", aws.ToString(result.MessageId)).
		Msg("email sent")
	return nil
}
