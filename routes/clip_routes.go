package routes

import (
	"playerpath_server/controllers"
	"playerpath_server/middleware"
	"playerpath_server/services"

	"github.com/gorilla/mux"
)

// RegisterClipRoutes sets up routes for clip storage operations
func RegisterClipRoutes(router *mux.Router, clipService *services.ClipService, jwtService *services.JWTService) {
	controller := &controllers.ClipController{Clips: clipService}

	clipRouter := router.PathPrefix("/api/clips").Subrouter()
	clipRouter.Use(middleware.Auth(jwtService))
	clipRouter.HandleFunc("/upload-url", controller.GenerateUploadURLHandler).Methods("POST")
	clipRouter.HandleFunc("/read-url", controller.GenerateReadURLHandler).Methods("POST")
}
