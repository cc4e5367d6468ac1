package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playerpath_server/middleware"
	"playerpath_server/models"
	"playerpath_server/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvitations struct {
	created *models.Invitation
	byID    map[string]*models.Invitation
	list    []models.Invitation
	err     error
}

func (f *fakeInvitations) CreateInvitation(_ context.Context, inv models.Invitation) (*models.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv.InvitationID = "inv_new"
	f.created = &inv
	return &inv, nil
}

func (f *fakeInvitations) GetInvitation(_ context.Context, invitationID string) (*models.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv, ok := f.byID[invitationID]
	if !ok {
		return nil, services.ErrInvitationNotFound
	}
	return inv, nil
}

func (f *fakeInvitations) ListInvitationsByAthlete(_ context.Context, _ string) ([]models.Invitation, error) {
	return f.list, f.err
}

type fakeResender struct {
	message string
	err     error

	calls      int
	lastCaller string
	lastID     string
}

func (f *fakeResender) Resend(_ context.Context, callerID, invitationID string) (string, error) {
	f.calls++
	f.lastCaller = callerID
	f.lastID = invitationID
	if f.err != nil {
		return "", f.err
	}
	return f.message, nil
}

func newTestRouter(controller *InvitationController) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/invitations", controller.CreateInvitationHandler).Methods("POST")
	r.HandleFunc("/api/invitations", controller.ListInvitationsHandler).Methods("GET")
	r.HandleFunc("/api/invitations/{invitationId}", controller.GetInvitationHandler).Methods("GET")
	r.HandleFunc("/api/invitations/{invitationId}/resend", controller.ResendInvitationEmailHandler).Methods("POST")
	return r
}

func authedRequest(method, target, body, athleteID string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if athleteID != "" {
		req = req.WithContext(middleware.WithAthleteID(req.Context(), athleteID))
	}
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	return body.Code, body.Message
}

func TestCreateInvitationHandler_MissingFields(t *testing.T) {
	controller := &InvitationController{Invitations: &fakeInvitations{}, Notifier: &fakeResender{}}
	router := newTestRouter(controller)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("POST", "/api/invitations", `{"athleteName":"Alex"}`, "athlete_1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "invalid-argument", code)
}

func TestCreateInvitationHandler_UsesCallerIdentity(t *testing.T) {
	invitations := &fakeInvitations{}
	controller := &InvitationController{Invitations: invitations, Notifier: &fakeResender{}}
	router := newTestRouter(controller)

	body := `{"athleteName":"Alex Rivera","coachEmail":"coach@example.com","folderName":"Spring Highlights","canUpload":true}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("POST", "/api/invitations", body, "athlete_1"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, invitations.created)
	assert.Equal(t, "athlete_1", invitations.created.AthleteID)
	assert.True(t, invitations.created.CanUpload)
}

func TestGetInvitationHandler_NotFound(t *testing.T) {
	controller := &InvitationController{Invitations: &fakeInvitations{byID: map[string]*models.Invitation{}}, Notifier: &fakeResender{}}
	router := newTestRouter(controller)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/api/invitations/missing", "", "athlete_1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "not-found", code)
}

func TestGetInvitationHandler_OwnershipEnforced(t *testing.T) {
	controller := &InvitationController{
		Invitations: &fakeInvitations{byID: map[string]*models.Invitation{
			"inv_001": {InvitationID: "inv_001", AthleteID: "athlete_1"},
		}},
		Notifier: &fakeResender{},
	}
	router := newTestRouter(controller)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/api/invitations/inv_001", "", "someone_else"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "permission-denied", code)
}

func TestResendHandler_Success(t *testing.T) {
	resender := &fakeResender{message: "Invitation email resent to coach@example.com"}
	controller := &InvitationController{Invitations: &fakeInvitations{}, Notifier: resender}
	router := newTestRouter(controller)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("POST", "/api/invitations/inv_001/resend", "", "athlete_1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resender.calls)
	assert.Equal(t, "athlete_1", resender.lastCaller)
	assert.Equal(t, "inv_001", resender.lastID)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "coach@example.com")
}

func TestResendHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", services.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"invalid argument", services.ErrMissingInvitationID, http.StatusBadRequest, "invalid-argument"},
		{"not found", services.ErrInvitationNotFound, http.StatusNotFound, "not-found"},
		{"permission denied", services.ErrPermissionDenied, http.StatusForbidden, "permission-denied"},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			controller := &InvitationController{Invitations: &fakeInvitations{}, Notifier: &fakeResender{err: tc.err}}
			router := newTestRouter(controller)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest("POST", "/api/invitations/inv_001/resend", "", "athlete_1"))

			assert.Equal(t, tc.wantStatus, rec.Code)
			code, message := decodeError(t, rec)
			assert.Equal(t, tc.wantCode, code)
			assert.NotEmpty(t, message)
		})
	}
}

func TestListInvitationsHandler_EmptyListIsJSONArray(t *testing.T) {
	controller := &InvitationController{Invitations: &fakeInvitations{}, Notifier: &fakeResender{}}
	router := newTestRouter(controller)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest("GET", "/api/invitations", "", "athlete_1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
