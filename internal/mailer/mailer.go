// Package mailer delivers verification and password-reset emails. The
// services depend on the Mailer interface only; delivery failures are
// reported to the caller, which decides whether they are fatal.
package mailer

import "context"

type Mailer interface {
	Send(ctx context.Context, html, subject string, recipients []string) error
}
