// Package mailer sends transactional email. It is an external collaborator
// of the auth flow: delivery failures must never fail the request.
package mailer

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Noop discards all messages. Used in tests and when SMTP is not configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, msg Message) error { return nil }
