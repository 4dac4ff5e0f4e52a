package handler

import (
	"context"
	"go-vidtube-api/common"
	"go-vidtube-api/service"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type contextKey string

const UserIDKey contextKey = "userID"

// extractToken pulls the access token from the auth cookie or, failing
// that, from the Authorization header in "Bearer <token>" form.
func extractToken(r *http.Request) string {
	if token := cookieValue(r, accessCookieName); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return ""
	}
	return headerParts[1]
}

// AuthMiddleware verifies the access token before any protected handler
// runs and stores the authenticated account identifier on the request
// context. Verification is purely cryptographic; no store lookup happens
// on this path.
func AuthMiddleware(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				appErr := common.NewAppError(http.StatusUnauthorized, "Access token is missing", nil)
				appErr.Send(w)
				return
			}

			userID, err := sessions.VerifyAccess(token, time.Now())
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired access token", nil)
				appErr.Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated account identifier placed on
// the context by AuthMiddleware, parsed into an ObjectID.
func UserIDFromContext(r *http.Request) (bson.ObjectID, *common.AppError) {
	raw, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return bson.ObjectID{}, common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.ObjectID{}, common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", err)
	}
	return id, nil
}
