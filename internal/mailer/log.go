package mailer

import (
	"context"
	"log/slog"
)

// LogMailer is the development fallback when no SendGrid key is configured:
// it logs instead of sending.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, _ string, subject string, recipients []string) error {
	slog.Info("mail delivery skipped (no mailer configured)", "subject", subject, "recipients", recipients)
	return nil
}
