// Package mail composes and delivers the contact-form email through an
// external SMTP relay.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"inkwell/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// Message is one contact-form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Mailer delivers contact messages. Implementations must be safe for
// concurrent use by request handlers.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var bodyTmpl = template.Must(template.New("contact").Parse(`<html>
  <body>
    <h3>From: {{.Name}}</h3>
    <h3>Email: {{.Email}}</h3>
    <h3>Message: {{.Body}}</h3>
  </body>
</html>`))

// BuildHTML renders the notification body. Submitted fields are escaped; the
// contact form is an open, unauthenticated input.
func BuildHTML(msg Message) (string, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SMTPMailer sends mail over a TLS-upgraded SMTP session (STARTTLS, :587 by
// default) using the configured sender credentials.
type SMTPMailer struct {
	cfg *config.Config
}

// NewSMTPMailer returns a Mailer backed by the configured SMTP relay.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send composes the HTML notification and transmits it synchronously. The
// caller decides how a failure surfaces; nothing is retried here.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.MailSender == "" || m.cfg.MailPassword == "" || m.cfg.MailRecipient == "" {
		return fmt.Errorf("mail relay is not configured")
	}

	html, err := BuildHTML(msg)
	if err != nil {
		return fmt.Errorf("compose contact mail: %w", err)
	}

	out := gomail.NewMsg()
	if err := out.From(m.cfg.MailSender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := out.To(m.cfg.MailRecipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	out.Subject(fmt.Sprintf("New contact message from %s", msg.Name))
	if msg.Email != "" {
		// Replies should go to the visitor, not the relay account.
		_ = out.ReplyTo(msg.Email)
	}
	out.SetBodyString(gomail.TypeTextHTML, html)

	client, err := gomail.NewClient(m.cfg.SMTPHost,
		gomail.WithPort(m.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.MailSender),
		gomail.WithPassword(m.cfg.MailPassword),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}
