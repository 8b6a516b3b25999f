// Package mail delivers contact-form submissions by email.
package mail

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

const subjectPrefix = "Portfolio Contact: "

var contactTemplate = template.Must(template.New("contact").Parse(`<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
`))

type contactView struct {
	Name    string
	Email   string
	Subject string
	Lines   []string
}

// SMTPConfig holds the account used to relay contact messages.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
	Timeout  time.Duration
}

// SMTPNotifier sends each contact message from the configured account to the
// site owner, with Reply-To set to the visitor.
type SMTPNotifier struct {
	cfg  SMTPConfig
	opts []gomail.Option
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.To == "" {
		cfg.To = cfg.Username
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(cfg.Timeout))
	}
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	}
	// Fail fast on a bad host or option set instead of on the first message.
	if _, err := gomail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("mail: smtp client: %w", err)
	}
	return &SMTPNotifier{cfg: cfg, opts: opts}, nil
}

func (n *SMTPNotifier) Send(ctx context.Context, msg ports.ContactMessage) error {
	m, err := n.buildMessage(msg)
	if err != nil {
		return err
	}
	client, err := gomail.NewClient(n.cfg.Host, n.opts...)
	if err != nil {
		return fmt.Errorf("mail: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) buildMessage(msg ports.ContactMessage) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(n.cfg.Username); err != nil {
		return nil, fmt.Errorf("mail: from address: %w", err)
	}
	if err := m.To(n.cfg.To); err != nil {
		return nil, fmt.Errorf("mail: to address: %w", err)
	}
	if err := m.ReplyToFormat(msg.Name, msg.Email); err != nil {
		return nil, fmt.Errorf("mail: reply-to address: %w", err)
	}
	m.Subject(subjectPrefix + msg.Subject)
	m.SetDate()

	view := contactView{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Lines:   strings.Split(strings.ReplaceAll(msg.Message, "\r\n", "\n"), "\n"),
	}
	if err := m.SetBodyHTMLTemplate(contactTemplate, view); err != nil {
		return nil, fmt.Errorf("mail: render body: %w", err)
	}
	m.AddAlternativeString(gomail.TypeTextPlain, plainBody(msg))
	return m, nil
}

func plainBody(msg ports.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nSubject: %s\n\n", msg.Name, msg.Email, msg.Subject)
	b.WriteString(msg.Message)
	b.WriteString("\n")
	return b.String()
}
