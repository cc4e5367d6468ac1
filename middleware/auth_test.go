package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"playerpath_server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func athleteEchoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, AthleteID(r))
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	jwtService := services.NewJWTService("test-secret", time.Hour)
	handler := Auth(jwtService)(athleteEchoHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	jwtService := services.NewJWTService("test-secret", time.Hour)
	handler := Auth(jwtService)(athleteEchoHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtService := services.NewJWTService("test-secret", time.Hour)
	handler := Auth(jwtService)(athleteEchoHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidTokenPassesAthleteID(t *testing.T) {
	jwtService := services.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateAccessToken("athlete_1")
	require.NoError(t, err)

	handler := Auth(jwtService)(athleteEchoHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "athlete_1", rec.Body.String())
}

func TestAthleteID_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "", AthleteID(req))
}
