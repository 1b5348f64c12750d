package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ResendMailer sends transactional mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

func NewResendMailer(apiKey, from string, log zerolog.Logger) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from, log: log}
}

// SendWelcome delivers the account-created greeting.
func (m *ResendMailer) SendWelcome(ctx context.Context, to, name string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Welcome to the events server",
		Text: fmt.Sprintf(
			"Hello %s,\n\nYour account has been created. You can now log in and start managing your events.\n",
			name,
		),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	m.log.Debug().Str("email_id", sent.Id).Str("to", to).Msg("welcome email sent")
	return nil
}

// NopMailer discards mail. Used when no API key is configured.
type NopMailer struct{}

func (NopMailer) SendWelcome(context.Context, string, string) error { return nil }
