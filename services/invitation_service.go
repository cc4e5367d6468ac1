package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"playerpath_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// InvitationCreatedSubject is the event subject published once per newly
// created invitation. The payload is the full invitation record.
const InvitationCreatedSubject = "invitations.created"

// ErrInvitationNotFound is returned when no invitation exists for an id.
var ErrInvitationNotFound = errors.New("invitation not found")

// EventPublisher publishes domain events for other components to consume.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

// InvitationService handles invitation records and their delivery-status
// write-backs.
type InvitationService struct {
	Dynamo *DynamoService
	Bus    EventPublisher
}

// CreateInvitation assigns the server-side identity fields, stores the record
// and publishes the created event. A publish failure does not fail creation;
// the resend operation is the recovery path for a lost event.
func (s *InvitationService) CreateInvitation(ctx context.Context, inv models.Invitation) (*models.Invitation, error) {
	inv.InvitationID = uuid.NewString()
	inv.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	// Delivery status belongs to the notifier alone; a client-supplied value
	// must never survive creation.
	inv.EmailSent = nil
	inv.EmailSentAt = ""
	inv.EmailResentAt = ""
	inv.EmailError = ""

	if err := s.Dynamo.PutItem(ctx, inv.TableName(), inv); err != nil {
		return nil, err
	}

	if s.Bus != nil {
		if err := s.Bus.Publish(ctx, InvitationCreatedSubject, inv); err != nil {
			log.Printf("Failed to publish created event for invitation %s: %v", inv.InvitationID, err)
		}
	}

	return &inv, nil
}

// GetInvitation retrieves an invitation by id.
func (s *InvitationService) GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error) {
	key := map[string]types.AttributeValue{
		"invitationId": &types.AttributeValueMemberS{Value: invitationID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.Invitation{}.TableName(), key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInvitationNotFound
	}

	var inv models.Invitation
	if err := attributevalue.UnmarshalMap(item, &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invitation: %w", err)
	}
	return &inv, nil
}

// ListInvitationsByAthlete returns the invitations one athlete has sent.
func (s *InvitationService) ListInvitationsByAthlete(ctx context.Context, athleteID string) ([]models.Invitation, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(
		ctx,
		models.Invitation{}.TableName(),
		models.AthleteIndex,
		"athleteId = :athleteId",
		map[string]types.AttributeValue{
			":athleteId": &types.AttributeValueMemberS{Value: athleteID},
		},
		nil,
		100,
	)
	if err != nil {
		return nil, err
	}

	var invitations []models.Invitation
	if err := attributevalue.UnmarshalListOfMaps(items, &invitations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invitations: %w", err)
	}
	return invitations, nil
}

// MarkEmailSent records a successful dispatch. The resend path stamps
// emailResentAt and leaves the original emailSentAt untouched; either way a
// stale emailError is removed so the record never reads sent-with-error.
func (s *InvitationService) MarkEmailSent(ctx context.Context, invitationID string, sentAt time.Time, resend bool) error {
	timestampField := "emailSentAt"
	if resend {
		timestampField = "emailResentAt"
	}

	updateExpression := fmt.Sprintf("SET emailSent = :sent, %s = :at REMOVE emailError", timestampField)
	_, err := s.Dynamo.UpdateItem(
		ctx,
		models.Invitation{}.TableName(),
		updateExpression,
		map[string]types.AttributeValue{
			"invitationId": &types.AttributeValueMemberS{Value: invitationID},
		},
		map[string]types.AttributeValue{
			":sent": &types.AttributeValueMemberBOOL{Value: true},
			":at":   &types.AttributeValueMemberS{Value: sentAt.UTC().Format(time.RFC3339)},
		},
		nil,
	)
	return err
}

// MarkEmailFailed records a failed dispatch attempt, overwriting any earlier
// error message with the latest one.
func (s *InvitationService) MarkEmailFailed(ctx context.Context, invitationID, message string) error {
	_, err := s.Dynamo.UpdateItem(
		ctx,
		models.Invitation{}.TableName(),
		"SET emailSent = :sent, emailError = :err",
		map[string]types.AttributeValue{
			"invitationId": &types.AttributeValueMemberS{Value: invitationID},
		},
		map[string]types.AttributeValue{
			":sent": &types.AttributeValueMemberBOOL{Value: false},
			":err":  &types.AttributeValueMemberS{Value: message},
		},
		nil,
	)
	return err
}
