package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/metrics"
)

const (
	DefaultNotifyTimeout = 10 * time.Second

	legacyVisitorName = "Portfolio visitor"
	legacySubject     = "New message"
)

// ContactDedup remembers recently relayed submissions (Redis).
type ContactDedup interface {
	IsDuplicate(ctx context.Context, fingerprint string) (bool, error)
	Mark(ctx context.Context, fingerprint string) error
}

type ContactService struct {
	notifier ports.Notifier
	dedup    ContactDedup
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewContactService returns a ContactService. dedup may be nil, in which case
// every submission is relayed.
func NewContactService(notifier ports.Notifier, dedup ContactDedup, timeout time.Duration, logger zerolog.Logger) *ContactService {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &ContactService{notifier: notifier, dedup: dedup, timeout: timeout, logger: logger}
}

// Submit validates the submission and relays it through the notifier, waiting
// at most the configured timeout.
func (s *ContactService) Submit(ctx context.Context, in ports.ContactInput) error {
	msg, err := normalizeContact(in)
	if err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	fp := fingerprint(msg)
	if s.dedup != nil {
		dup, err := s.dedup.IsDuplicate(ctx, fp)
		if err != nil {
			s.logger.Warn().Err(err).Msg("contact dedup check failed, sending anyway")
		} else if dup {
			metrics.ContactMessagesTotal.WithLabelValues("duplicate").Inc()
			s.logger.Debug().Str("from", msg.Email).Msg("duplicate contact message skipped")
			return nil
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.notifier.Send(sendCtx, msg); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("failed").Inc()
		s.logger.Error().Err(err).Str("from", msg.Email).Msg("contact message not delivered")
		return notifierError(err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, fp); err != nil {
			s.logger.Warn().Err(err).Msg("failed to mark contact message")
		}
	}

	metrics.ContactMessagesTotal.WithLabelValues("sent").Inc()
	s.logger.Info().Str("from", msg.Email).Str("subject", msg.Subject).Msg("contact message relayed")
	return nil
}

// normalizeContact maps both payload shapes onto a ContactMessage. The legacy
// {visitorEmail, message} form gets a default name and subject; the current
// form requires all four fields.
func normalizeContact(in ports.ContactInput) (ports.ContactMessage, error) {
	msg := ports.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if visitor := strings.TrimSpace(in.VisitorEmail); msg.Email == "" && visitor != "" {
		msg.Email = visitor
		if msg.Name == "" {
			msg.Name = legacyVisitorName
		}
		if msg.Subject == "" {
			msg.Subject = legacySubject
		}
	}

	switch {
	case msg.Name == "":
		return msg, domain.Invalid("name", "is required")
	case msg.Email == "":
		return msg, domain.Invalid("email", "is required")
	case msg.Subject == "":
		return msg, domain.Invalid("subject", "is required")
	case msg.Message == "":
		return msg, domain.Invalid("message", "is required")
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return msg, domain.Invalid("email", "must be a valid email")
	}
	return msg, nil
}

func fingerprint(m ports.ContactMessage) string {
	h := sha256.New()
	for _, part := range []string{strings.ToLower(m.Email), m.Subject, m.Message} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func notifierError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotifier):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrNotifierTimeout, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrNotifier, err)
	}
}
