// file: handler/auth_middleware_test.go

package handler

import (
	"context"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"go-vidtube-api/service"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestSessions() (*service.SessionService, *service.TokenCodec) {
	codec := service.NewTokenCodec("access-secret", "refresh-secret")
	return service.NewSessionService(nil, codec), codec
}

// echoUserID records whether the wrapped handler ran and the user ID it saw.
type echoUserID struct {
	called bool
	userID string
}

func (e *echoUserID) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.called = true
	e.userID, _ = r.Context().Value(UserIDKey).(string)
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	sessions, codec := newTestSessions()
	middleware := AuthMiddleware(sessions)
	userID := bson.NewObjectID().Hex()

	t.Run("missing token is rejected", func(t *testing.T) {
		next := &echoUserID{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rec := httptest.NewRecorder()

		middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("valid bearer token passes the user ID through", func(t *testing.T) {
		token, err := codec.Issue(userID, model.TokenClassAccess, time.Now())
		require.NoError(t, err)

		next := &echoUserID{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, next.called)
		assert.Equal(t, userID, next.userID)
	})

	t.Run("valid cookie token passes the user ID through", func(t *testing.T) {
		token, err := codec.Issue(userID, model.TokenClassAccess, time.Now())
		require.NoError(t, err)

		next := &echoUserID{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.AddCookie(&http.Cookie{Name: accessCookieName, Value: token})
		rec := httptest.NewRecorder()

		middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, next.userID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := codec.Issue(userID, model.TokenClassAccess, time.Now().Add(-time.Hour))
		require.NoError(t, err)

		next := &echoUserID{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("refresh token is not accepted on the access path", func(t *testing.T) {
		token, err := codec.Issue(userID, model.TokenClassRefresh, time.Now())
		require.NoError(t, err)

		next := &echoUserID{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("malformed authorization header is rejected", func(t *testing.T) {
		next := &echoUserID{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})
}

func TestUserIDFromContext(t *testing.T) {
	t.Run("returns the parsed ObjectID", func(t *testing.T) {
		id := bson.NewObjectID()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, id.Hex()))

		got, appErr := UserIDFromContext(req)

		require.Nil(t, appErr)
		assert.Equal(t, id, got)
	})

	t.Run("rejects a request without an authenticated user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, appErr := UserIDFromContext(req)

		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})
}
