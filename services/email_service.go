package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrNotConfigured is returned by Send when no provider API key was supplied.
var ErrNotConfigured = errors.New("email provider not configured")

// Dispatcher submits one composed email to the transactional-email provider.
// Implementations make exactly one outbound call per invocation and never
// retry internally; retry policy belongs to the caller.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// EmailService dispatches transactional email through SendGrid.
type EmailService struct {
	client      *sendgrid.Client
	fromAddress string
	fromName    string
}

// NewEmailService builds the dispatcher. An empty apiKey yields a service
// whose sends fail with ErrNotConfigured instead of a generic provider error.
func NewEmailService(apiKey, fromAddress, fromName string) *EmailService {
	svc := &EmailService{fromAddress: fromAddress, fromName: fromName}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

func (s *EmailService) IsConfigured() bool {
	return s.client != nil
}

// Send performs a single provider call. Provider rejections and transport
// failures are returned with the underlying message preserved for the
// write-back and the logs.
func (s *EmailService) Send(ctx context.Context, to, subject, text, html string) error {
	if to == "" {
		return errors.New("recipient address is empty")
	}
	if s.client == nil {
		return ErrNotConfigured
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromAddress),
		subject,
		mail.NewEmail("", to),
		text,
		html,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to dispatch email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email provider rejected send (status %d): %s", response.StatusCode, strings.TrimSpace(response.Body))
	}
	return nil
}
