package routes

import (
	"playerpath_server/controllers"
	"playerpath_server/middleware"
	"playerpath_server/services"

	"github.com/gorilla/mux"
)

// RegisterInvitationRoutes registers all invitation-related routes under `/api/invitations`
func RegisterInvitationRoutes(router *mux.Router, invitationService *services.InvitationService, notifier *services.NotifierService, jwtService *services.JWTService) {
	controller := &controllers.InvitationController{
		Invitations: invitationService,
		Notifier:    notifier,
	}

	invitationRouter := router.PathPrefix("/api/invitations").Subrouter()
	invitationRouter.Use(middleware.Auth(jwtService))
	invitationRouter.HandleFunc("", controller.CreateInvitationHandler).Methods("POST")                            // Create an invitation
	invitationRouter.HandleFunc("", controller.ListInvitationsHandler).Methods("GET")                              // List the caller's invitations
	invitationRouter.HandleFunc("/{invitationId}", controller.GetInvitationHandler).Methods("GET")                 // Get one invitation
	invitationRouter.HandleFunc("/{invitationId}/resend", controller.ResendInvitationEmailHandler).Methods("POST") // Resend the invitation email
}
