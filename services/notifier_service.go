package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"playerpath_server/metrics"
	"playerpath_server/models"
)

var (
	// ErrUnauthenticated is returned when a resend call carries no caller identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrMissingInvitationID is returned when a resend call omits the invitation id.
	ErrMissingInvitationID = errors.New("invitationId is required")
	// ErrPermissionDenied is returned when the resend caller is not the inviting athlete.
	ErrPermissionDenied = errors.New("only the inviting athlete can resend this invitation")
)

// InvitationStatusStore is the slice of the invitation store the notifier
// needs: reading a record for resend and writing delivery status back.
type InvitationStatusStore interface {
	GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error)
	MarkEmailSent(ctx context.Context, invitationID string, sentAt time.Time, resend bool) error
	MarkEmailFailed(ctx context.Context, invitationID, message string) error
}

// InvitationStatus is pushed to the inviting athlete's clients after every
// write-back.
type InvitationStatus struct {
	InvitationID string `json:"invitationId"`
	EmailSent    bool   `json:"emailSent"`
	EmailError   string `json:"emailError,omitempty"`
}

// StatusBroadcaster fans a delivery-status update out to connected clients.
type StatusBroadcaster interface {
	BroadcastInvitationStatus(athleteID string, status InvitationStatus)
}

// NotifierService owns the invitation email pipeline: the automatic path
// reacting to created events, and the authorization-gated resend path. Both
// share the render -> dispatch -> write-back sequence and the emailSent /
// emailError fields.
type NotifierService struct {
	Store       InvitationStatusStore
	Dispatcher  Dispatcher
	Templates   *TemplateService
	Broadcaster StatusBroadcaster
}

// HandleInvitationCreated processes one created event. Dispatch failures are
// absorbed into the record's status fields and never returned; the only error
// surfaced to the event layer is a failed write-back, which triggers
// redelivery of the whole event. Redelivery re-runs the full pipeline, so a
// duplicate event may send one more email but always leaves the record in a
// single consistent status.
func (s *NotifierService) HandleInvitationCreated(ctx context.Context, inv models.Invitation) error {
	if field := missingInvitationField(inv); field != "" {
		log.Printf("Invitation %s is missing required field %q, skipping email", inv.InvitationID, field)
		message := "invalid invitation: missing " + field
		if err := s.Store.MarkEmailFailed(ctx, inv.InvitationID, message); err != nil {
			return fmt.Errorf("failed to record invalid invitation %s: %w", inv.InvitationID, err)
		}
		s.broadcast(inv.AthleteID, InvitationStatus{InvitationID: inv.InvitationID, EmailSent: false, EmailError: message})
		return nil
	}

	content, err := s.Templates.RenderInvitationEmail(inv)
	if err != nil {
		log.Printf("Failed to render invitation email for %s: %v", inv.InvitationID, err)
		if markErr := s.Store.MarkEmailFailed(ctx, inv.InvitationID, err.Error()); markErr != nil {
			return fmt.Errorf("failed to record render failure for invitation %s: %w", inv.InvitationID, markErr)
		}
		return nil
	}

	if sendErr := s.Dispatcher.Send(ctx, inv.CoachEmail, content.Subject, content.Text, content.HTML); sendErr != nil {
		log.Printf("Failed to send invitation email for %s: %v", inv.InvitationID, sendErr)
		metrics.InvitationEmailsFailed.Inc()
		if err := s.Store.MarkEmailFailed(ctx, inv.InvitationID, sendErr.Error()); err != nil {
			return fmt.Errorf("failed to record send failure for invitation %s: %w", inv.InvitationID, err)
		}
		s.broadcast(inv.AthleteID, InvitationStatus{InvitationID: inv.InvitationID, EmailSent: false, EmailError: sendErr.Error()})
		return nil
	}

	metrics.InvitationEmailsSent.Inc()
	if err := s.Store.MarkEmailSent(ctx, inv.InvitationID, time.Now().UTC(), false); err != nil {
		return fmt.Errorf("failed to record delivery for invitation %s: %w", inv.InvitationID, err)
	}

	log.Printf("Invitation email sent for %s to %s", inv.InvitationID, inv.CoachEmail)
	s.broadcast(inv.AthleteID, InvitationStatus{InvitationID: inv.InvitationID, EmailSent: true})
	return nil
}

// Resend re-delivers the invitation email on demand. Callers must be
// authenticated and must be the invitation's creator; the check is strict
// equality with no role override. A successful resend stamps emailResentAt.
func (s *NotifierService) Resend(ctx context.Context, callerID, invitationID string) (string, error) {
	if callerID == "" {
		return "", ErrUnauthenticated
	}
	if invitationID == "" {
		return "", ErrMissingInvitationID
	}

	inv, err := s.Store.GetInvitation(ctx, invitationID)
	if err != nil {
		return "", err
	}
	if inv.AthleteID != callerID {
		return "", ErrPermissionDenied
	}

	if field := missingInvitationField(*inv); field != "" {
		return "", fmt.Errorf("invitation is missing required field %q", field)
	}

	content, err := s.Templates.RenderInvitationEmail(*inv)
	if err != nil {
		return "", fmt.Errorf("failed to render invitation email: %w", err)
	}

	if sendErr := s.Dispatcher.Send(ctx, inv.CoachEmail, content.Subject, content.Text, content.HTML); sendErr != nil {
		log.Printf("Failed to resend invitation email for %s: %v", invitationID, sendErr)
		metrics.InvitationEmailsFailed.Inc()
		if err := s.Store.MarkEmailFailed(ctx, invitationID, sendErr.Error()); err != nil {
			log.Printf("Failed to record resend failure for invitation %s: %v", invitationID, err)
		}
		s.broadcast(inv.AthleteID, InvitationStatus{InvitationID: invitationID, EmailSent: false, EmailError: sendErr.Error()})
		return "", fmt.Errorf("failed to send invitation email: %w", sendErr)
	}

	metrics.InvitationEmailsResent.Inc()
	if err := s.Store.MarkEmailSent(ctx, invitationID, time.Now().UTC(), true); err != nil {
		log.Printf("Failed to record resend for invitation %s: %v", invitationID, err)
		return "", fmt.Errorf("email sent but status update failed: %w", err)
	}

	log.Printf("Invitation email resent for %s to %s", invitationID, inv.CoachEmail)
	s.broadcast(inv.AthleteID, InvitationStatus{InvitationID: invitationID, EmailSent: true})
	return fmt.Sprintf("Invitation email resent to %s", inv.CoachEmail), nil
}

func (s *NotifierService) broadcast(athleteID string, status InvitationStatus) {
	if s.Broadcaster == nil || athleteID == "" {
		return
	}
	s.Broadcaster.BroadcastInvitationStatus(athleteID, status)
}

// missingInvitationField names the first absent required field, or "".
func missingInvitationField(inv models.Invitation) string {
	switch {
	case inv.CoachEmail == "":
		return "coachEmail"
	case inv.AthleteName == "":
		return "athleteName"
	case inv.FolderName == "":
		return "folderName"
	}
	return ""
}
