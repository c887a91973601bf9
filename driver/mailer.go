// SMTP driver. Opens a STARTTLS session on the configured submission
// endpoint per message; transport failures are wrapped as
// domain.ErrMailUnavailable for the notifier's retry classifier.
package driver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/wneessen/go-mail"

	"tvp-scraper/config"
	"tvp-scraper/domain"
)

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPMailer creates a mailer from the e-mail configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Email.SMTPHost,
		port:     cfg.Email.SMTPPort,
		username: cfg.Email.Sender,
		password: cfg.Email.Password,
	}
}

// Send builds the MIME message and delivers it. Attachments become base64
// octet-stream parts carrying their base filenames; To and Cc addresses
// are all envelope recipients.
func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	msg := mail.NewMsg()

	if err := msg.From(email.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", email.From, err)
	}

	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", email.To, err)
	}

	if len(email.Cc) > 0 {
		if err := msg.Cc(email.Cc...); err != nil {
			return fmt.Errorf("invalid CC address list: %w", err)
		}
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)

	for _, path := range email.Attachments {
		msg.AttachFile(path, mail.WithFileName(filepath.Base(path)))
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailUnavailable, err)
	}

	return nil
}
