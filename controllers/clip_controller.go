package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"playerpath_server/helpers"
	"playerpath_server/services"
)

// ClipController handles presigned-URL requests for clip uploads and reads
type ClipController struct {
	Clips *services.ClipService
}

// GenerateUploadURLHandler generates a presigned URL for uploading a clip
func (c *ClipController) GenerateUploadURLHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "invalid-argument", "invalid request payload")
		return
	}

	if payload.FileName == "" || payload.FileType == "" {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "invalid-argument", "fileName and fileType are required")
		return
	}

	url, key, err := c.Clips.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Failed to generate upload URL: %v", err)
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "failed to generate upload URL")
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GenerateReadURLHandler generates a presigned URL for reading a clip
func (c *ClipController) GenerateReadURLHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		helpers.WriteErrorResponse(w, http.StatusBadRequest, "invalid-argument", "key is required")
		return
	}

	url, err := c.Clips.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		log.Printf("Failed to generate read URL: %v", err)
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "failed to generate read URL")
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url})
}
