package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateAccessToken("athlete_1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "athlete_1", claims.AthleteID)
	assert.Equal(t, "athlete_1", claims.Subject)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateAccessToken("athlete_1")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	token, err := NewJWTService("test-secret", -time.Minute).GenerateAccessToken("athlete_1")
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", -time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret", time.Hour).ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
