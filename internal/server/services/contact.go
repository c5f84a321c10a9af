package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/wealthx/paydesk/internal/server/mailer"
)

type ContactService struct {
	sender mailer.Sender
}

func NewContactService(sender mailer.Sender) *ContactService {
	return &ContactService{sender: sender}
}

// Submit relays a contact form message to the site owner.
func (s *ContactService) Submit(ctx context.Context, msg mailer.ContactMessage) error {
	msg.Email = strings.TrimSpace(msg.Email)
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return invalid("a valid email is required")
	}
	if strings.TrimSpace(msg.Message) == "" {
		return invalid("message is required")
	}
	return s.sender.SendContact(ctx, msg)
}
