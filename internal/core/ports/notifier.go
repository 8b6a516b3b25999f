package ports

import "context"

// ContactMessage is a contact-form submission relayed by email.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Notifier delivers contact messages. Implementations must honour ctx cancellation.
type Notifier interface {
	Send(ctx context.Context, msg ContactMessage) error
}
