package middleware

import (
	"context"
	"net/http"
	"strings"

	"playerpath_server/helpers"
	"playerpath_server/services"
)

type contextKey string

const athleteIDKey contextKey = "athleteId"

// Auth validates the bearer token and stashes the athlete id in the request
// context. Requests without a valid token get a structured unauthenticated
// error.
func Auth(jwtService *services.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				helpers.WriteErrorResponse(w, http.StatusUnauthorized, "unauthenticated", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				helpers.WriteErrorResponse(w, http.StatusUnauthorized, "unauthenticated", "invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				helpers.WriteErrorResponse(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAthleteID(r.Context(), claims.AthleteID)))
		})
	}
}

// WithAthleteID returns a context carrying the authenticated athlete id.
func WithAthleteID(ctx context.Context, athleteID string) context.Context {
	return context.WithValue(ctx, athleteIDKey, athleteID)
}

// AthleteID returns the authenticated athlete id, or "" when the request was
// not authenticated.
func AthleteID(r *http.Request) string {
	if id, ok := r.Context().Value(athleteIDKey).(string); ok {
		return id
	}
	return ""
}
