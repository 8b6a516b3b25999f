package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// LogNotifier writes contact messages to the log. It is used when no SMTP
// credentials are configured, typically in development.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(ctx context.Context, msg ports.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", subjectPrefix+msg.Subject).
		Str("message", msg.Message).
		Msg("contact message (mail disabled)")
	return nil
}
