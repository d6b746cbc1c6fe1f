package port

import "context"

// EmailSender defines the contract for sending client-facing email.
type EmailSender interface {
	SendClientEmail(ctx context.Context, toEmail, subject, body string) error
}
