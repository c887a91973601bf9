package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tvp-scraper/config"
	"tvp-scraper/domain"
	"tvp-scraper/retry"
)

// notifierService implementation.
type notifierService struct {
	logger *slog.Logger
	email  config.EmailConfig
	sender MailSender
	policy *retry.Policy
}

// NewNotifier creates a notifier sending through the given mail transport.
func NewNotifier(cfg *config.Config, logger *slog.Logger, sender MailSender) Notifier {
	classifier := func(err error) bool {
		return errors.Is(err, domain.ErrMailUnavailable)
	}

	return &notifierService{
		logger: logger,
		email:  cfg.Email,
		sender: sender,
		policy: retry.NewPolicy(cfg.Retry.MaxAttempts, cfg.Retry.Delay, classifier, logger),
	}
}

// Notify composes the run notification and sends it: configured sender,
// recipient and CC list, subject suffixed with the run date, plain-text
// body, snapshot and run log attached. CC addresses are envelope
// recipients, not just header decoration.
func (s *notifierService) Notify(ctx context.Context, snapshotPath, logPath string, runDate time.Time) error {
	msg := domain.Email{
		From:        s.email.Sender,
		To:          s.email.Receiver,
		Cc:          s.email.CCList,
		Subject:     s.email.Subject + " - " + runDate.Format("20060102"),
		Body:        s.email.Body,
		Attachments: []string{snapshotPath, logPath},
	}

	err := s.policy.Do(ctx, "email send", func() error {
		return s.sender.Send(ctx, msg)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Email sent successfully",
		"to", msg.To,
		"cc_count", len(msg.Cc),
		"attachments", len(msg.Attachments))

	return nil
}
