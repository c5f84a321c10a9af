// Package mailer relays contact-form messages over authenticated SMTP.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// ContactMessage is one submission of the public contact form.
type ContactMessage struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
}

func (c ContactMessage) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Sender delivers a contact message to the site owner.
type Sender interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

var dialAndSend = func(ctx context.Context, c *mail.Client, msgs ...*mail.Msg) error {
	return c.DialAndSendWithContext(ctx, msgs...)
}

// SMTPMailer requires TLS and authenticates with PLAIN.
type SMTPMailer struct {
	cfg    SMTPConfig
	client *mail.Client
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Recipient == "" {
		cfg.Recipient = cfg.From
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{cfg: cfg, client: client}, nil
}

func (m *SMTPMailer) SendContact(ctx context.Context, msg ContactMessage) error {
	email, err := buildContactMessage(m.cfg.From, m.cfg.Recipient, msg)
	if err != nil {
		return err
	}
	if err := dialAndSend(ctx, m.client, email); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// buildContactMessage addresses the mail from the configured sender under
// the visitor's name, with Reply-To pointing back at the visitor.
func buildContactMessage(from, to string, c ContactMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(c.FullName(), from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if err := m.ReplyTo(c.Email); err != nil {
		return nil, fmt.Errorf("reply-to: %w", err)
	}
	m.Subject("New Contact Form Submission Received")
	m.SetBodyString(mail.TypeTextPlain, contactBody(c))
	return m, nil
}

func contactBody(c ContactMessage) string {
	var b strings.Builder
	b.WriteString("You have received a new message from your website contact form:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", c.FullName())
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	b.WriteString("Message:\n")
	b.WriteString(c.Message)
	b.WriteString("\n\nThis message was submitted via the contact form on your website.\n")
	return b.String()
}
