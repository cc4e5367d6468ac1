package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"playerpath_server/helpers"
	"playerpath_server/middleware"
	"playerpath_server/models"
	"playerpath_server/services"

	"github.com/gorilla/mux"
)

// InvitationStore is the slice of the invitation service the controller uses.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, inv models.Invitation) (*models.Invitation, error)
	GetInvitation(ctx context.Context, invitationID string) (*models.Invitation, error)
	ListInvitationsByAthlete(ctx context.Context, athleteID string) ([]models.Invitation, error)
}

// InvitationResender triggers an on-demand re-delivery of the invitation email.
type InvitationResender interface {
	Resend(ctx context.Context, callerID, invitationID string) (string, error)
}

// InvitationController handles HTTP requests for invitation records and the
// resend operation.
type InvitationController struct {
	Invitations InvitationStore
	Notifier    InvitationResender
}

// CreateInvitationHandler creates an invitation for the authenticated athlete.
func (c *InvitationController) CreateInvitationHandler(w http.ResponseWriter, r *http.Request) {
	var inv models.Invitation
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "invalid-argument", "invalid request body")
		return
	}

	if inv.CoachEmail == "" || inv.AthleteName == "" || inv.FolderName == "" {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "invalid-argument", "coachEmail, athleteName and folderName are required")
		return
	}

	inv.AthleteID = middleware.AthleteID(r)

	created, err := c.Invitations.CreateInvitation(r.Context(), inv)
	if err != nil {
		log.Printf("Failed to create invitation: %v", err)
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "failed to create invitation")
		return
	}

	helpers.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetInvitationHandler fetches one invitation; only its creator may read it.
func (c *InvitationController) GetInvitationHandler(w http.ResponseWriter, r *http.Request) {
	invitationID := mux.Vars(r)["invitationId"]

	inv, err := c.Invitations.GetInvitation(r.Context(), invitationID)
	if err != nil {
		if errors.Is(err, services.ErrInvitationNotFound) {
			helpers.WriteErrorResponse(w, http.StatusNotFound, "not-found", "invitation not found")
			return
		}
		log.Printf("Failed to fetch invitation %s: %v", invitationID, err)
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "failed to fetch invitation")
		return
	}

	if inv.AthleteID != middleware.AthleteID(r) {
		helpers.WriteErrorResponse(w, http.StatusForbidden, "permission-denied", "you do not own this invitation")
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, inv)
}

// ListInvitationsHandler lists the invitations the authenticated athlete has sent.
func (c *InvitationController) ListInvitationsHandler(w http.ResponseWriter, r *http.Request) {
	athleteID := middleware.AthleteID(r)

	invitations, err := c.Invitations.ListInvitationsByAthlete(r.Context(), athleteID)
	if err != nil {
		log.Printf("Failed to list invitations for athlete %s: %v", athleteID, err)
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "failed to list invitations")
		return
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}

	helpers.WriteJSONResponse(w, http.StatusOK, invitations)
}

// ResendInvitationEmailHandler re-delivers the invitation email to the coach.
// Restricted to the invitation's creator.
func (c *InvitationController) ResendInvitationEmailHandler(w http.ResponseWriter, r *http.Request) {
	invitationID := mux.Vars(r)["invitationId"]
	callerID := middleware.AthleteID(r)

	message, err := c.Notifier.Resend(r.Context(), callerID, invitationID)
	if err != nil {
		status, code := resendErrorStatus(err)
		if code == "internal" {
			log.Printf("Failed to resend invitation %s: %v", invitationID, err)
		}
		helpers.WriteErrorResponse(w, status, code, err.Error())
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func resendErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, services.ErrMissingInvitationID):
		return http.StatusBadRequest, "invalid-argument"
	case errors.Is(err, services.ErrInvitationNotFound):
		return http.StatusNotFound, "not-found"
	case errors.Is(err, services.ErrPermissionDenied):
		return http.StatusForbidden, "permission-denied"
	}
	return http.StatusInternalServerError, "internal"
}
