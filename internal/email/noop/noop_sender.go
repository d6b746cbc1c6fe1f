// Package noop provides an EmailSender that logs instead of sending. Used in
// development and as the default when no email provider is configured.
package noop

import (
	"context"
	"log"

	"getgsa/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendClientEmail(_ context.Context, toEmail, subject, _ string) error {
	log.Printf("noop.EmailSender: would send %q to %s", subject, toEmail)
	return nil
}
