package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

func newTestNotifier(t *testing.T) *SMTPNotifier {
	t.Helper()
	n, err := NewSMTPNotifier(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "owner@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	return n
}

func TestSMTPNotifier_BuildMessage(t *testing.T) {
	n := newTestNotifier(t)

	m, err := n.buildMessage(ports.ContactMessage{
		Name:    "Grace",
		Email:   "grace@example.com",
		Subject: "Hiring",
		Message: "Hello\nthere",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: Portfolio Contact: Hiring")
	assert.Contains(t, raw, "To: <owner@example.com>")
	assert.Contains(t, raw, "grace@example.com")
	assert.Contains(t, raw, "New Contact Form Submission")
	assert.Contains(t, raw, "Hello<br>there")
}

func TestSMTPNotifier_EscapesVisitorInput(t *testing.T) {
	n := newTestNotifier(t)

	m, err := n.buildMessage(ports.ContactMessage{
		Name:    "Eve",
		Email:   "eve@example.com",
		Subject: "x",
		Message: "<script>",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.False(t, strings.Contains(buf.String(), "<p><script>"))
}

func TestSMTPNotifier_RejectsBadReplyTo(t *testing.T) {
	n := newTestNotifier(t)

	_, err := n.buildMessage(ports.ContactMessage{Name: "A", Email: "not an address", Subject: "s", Message: "m"})
	assert.Error(t, err)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	require.NoError(t, n.Send(context.Background(), ports.ContactMessage{Name: "A", Email: "a@example.com", Subject: "Hi", Message: "m"}))
	assert.Contains(t, buf.String(), "Portfolio Contact: Hi")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Send(ctx, ports.ContactMessage{}), context.Canceled)
}
