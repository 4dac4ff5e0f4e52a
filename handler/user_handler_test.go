// file: handler/user_handler_test.go

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"go-vidtube-api/model"
	"go-vidtube-api/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// stubUserRepo holds a single account in memory, enough to drive the
// session endpoints end to end.
type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = bson.NewObjectID()
	s.user = user
	return nil
}

func (s *stubUserRepo) GetUserByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, mongo.ErrNoDocuments
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubUserRepo) GetUserByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	if s.user == nil || s.user.RefreshToken == "" || s.user.RefreshToken != token {
		return nil, mongo.ErrNoDocuments
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubUserRepo) UpdateRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	if s.user == nil || s.user.ID != id {
		return mongo.ErrNoDocuments
	}
	s.user.RefreshToken = token
	return nil
}

func (s *stubUserRepo) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	if s.user == nil || s.user.ID != id {
		return mongo.ErrNoDocuments
	}
	s.user.Password = passwordHash
	return nil
}

func newLoginFixture(t *testing.T) (*UserHandler, *stubUserRepo) {
	t.Helper()

	hash, err := service.HashPassword("secret-password")
	require.NoError(t, err)

	repo := &stubUserRepo{user: &model.User{
		ID:       bson.NewObjectID(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: hash,
	}}

	codec := service.NewTokenCodec("access-secret", "refresh-secret")
	sessions := service.NewSessionService(repo, codec)
	users := service.NewUserService(repo)

	return NewUserHandler(users, sessions, nil, false), repo
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func doLogin(t *testing.T, h *UserHandler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(model.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	appErr := h.Login(rec, req)
	if appErr != nil {
		appErr.Send(rec)
	}
	return rec
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("sets token cookies and keeps tokens out of the body", func(t *testing.T) {
		h, repo := newLoginFixture(t)
		rec := doLogin(t, h, "alice@example.com", "secret-password")

		assert.Equal(t, http.StatusOK, rec.Code)

		access := cookieByName(t, rec, "accessToken")
		refresh := cookieByName(t, rec, "refreshToken")
		require.NotNil(t, access)
		require.NotNil(t, refresh)
		assert.True(t, access.HttpOnly)
		assert.True(t, refresh.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
		assert.Equal(t, http.SameSiteStrictMode, refresh.SameSite)
		assert.Positive(t, access.MaxAge)
		assert.Positive(t, refresh.MaxAge)

		assert.NotContains(t, rec.Body.String(), access.Value)
		assert.NotContains(t, rec.Body.String(), refresh.Value)
		assert.NotContains(t, rec.Body.String(), repo.user.Password)
		assert.Contains(t, rec.Body.String(), "alice@example.com")
	})

	t.Run("wrong password yields the uniform unauthorized error", func(t *testing.T) {
		h, _ := newLoginFixture(t)
		rec := doLogin(t, h, "alice@example.com", "wrong-password")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})

	t.Run("unknown email yields the same error as a wrong password", func(t *testing.T) {
		h, _ := newLoginFixture(t)
		rec := doLogin(t, h, "nobody@example.com", "secret-password")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})
}

func TestUserHandler_Refresh(t *testing.T) {
	t.Run("rotates the cookie pair", func(t *testing.T) {
		h, repo := newLoginFixture(t)
		loginRec := doLogin(t, h, "alice@example.com", "secret-password")
		oldRefresh := cookieByName(t, loginRec, "refreshToken")
		require.NotNil(t, oldRefresh)

		// Refresh tokens issued in the same second still rotate thanks to
		// the jti claim, but a beat keeps the test honest about time.
		time.Sleep(10 * time.Millisecond)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
		req.AddCookie(oldRefresh)
		rec := httptest.NewRecorder()

		appErr := h.Refresh(rec, req)
		require.Nil(t, appErr)

		newRefresh := cookieByName(t, rec, "refreshToken")
		require.NotNil(t, newRefresh)
		assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)
		assert.Equal(t, newRefresh.Value, repo.user.RefreshToken)
	})

	t.Run("missing cookie is rejected", func(t *testing.T) {
		h, _ := newLoginFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
		rec := httptest.NewRecorder()

		appErr := h.Refresh(rec, req)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})

	t.Run("superseded cookie is rejected", func(t *testing.T) {
		h, _ := newLoginFixture(t)
		firstRec := doLogin(t, h, "alice@example.com", "secret-password")
		staleRefresh := cookieByName(t, firstRec, "refreshToken")
		require.NotNil(t, staleRefresh)

		// A second login replaces the stored token.
		doLogin(t, h, "alice@example.com", "secret-password")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
		req.AddCookie(staleRefresh)
		rec := httptest.NewRecorder()

		appErr := h.Refresh(rec, req)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})
}

func TestUserHandler_Logout(t *testing.T) {
	t.Run("clears the cookies and the stored token", func(t *testing.T) {
		h, repo := newLoginFixture(t)
		loginRec := doLogin(t, h, "alice@example.com", "secret-password")
		refresh := cookieByName(t, loginRec, "refreshToken")
		require.NotNil(t, refresh)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
		req.AddCookie(refresh)
		rec := httptest.NewRecorder()

		appErr := h.Logout(rec, req)
		require.Nil(t, appErr)

		clearedAccess := cookieByName(t, rec, "accessToken")
		clearedRefresh := cookieByName(t, rec, "refreshToken")
		require.NotNil(t, clearedAccess)
		require.NotNil(t, clearedRefresh)
		assert.Empty(t, clearedAccess.Value)
		assert.Empty(t, clearedRefresh.Value)
		assert.Negative(t, clearedAccess.MaxAge)
		assert.Negative(t, clearedRefresh.MaxAge)

		assert.Empty(t, repo.user.RefreshToken)
	})

	t.Run("missing cookie is rejected", func(t *testing.T) {
		h, _ := newLoginFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
		rec := httptest.NewRecorder()

		appErr := h.Logout(rec, req)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})
}

func TestUserHandler_Me(t *testing.T) {
	t.Run("returns the sanitized current user", func(t *testing.T) {
		h, repo := newLoginFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, repo.user.ID.Hex()))
		rec := httptest.NewRecorder()

		appErr := h.Me(rec, req)
		require.Nil(t, appErr)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "alice@example.com")
		assert.NotContains(t, rec.Body.String(), repo.user.Password)
	})

	t.Run("deleted account behind a live token is unauthorized", func(t *testing.T) {
		h, _ := newLoginFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, bson.NewObjectID().Hex()))
		rec := httptest.NewRecorder()

		appErr := h.Me(rec, req)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})
}
