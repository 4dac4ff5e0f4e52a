package handler

import (
	"errors"
	"go-vidtube-api/common"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"go-vidtube-api/service"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

type UserHandler struct {
	users    *service.UserService
	sessions *service.SessionService
	uploader service.IUploader
	// secureCookies marks the auth cookies TLS-only; false is acceptable
	// only in local development.
	secureCookies bool
}

func NewUserHandler(users *service.UserService, sessions *service.SessionService, uploader service.IUploader, secureCookies bool) *UserHandler {
	return &UserHandler{
		users:         users,
		sessions:      sessions,
		uploader:      uploader,
		secureCookies: secureCookies,
	}
}

func (h *UserHandler) authCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// setAuthCookies delivers a token pair to the client. Raw tokens are never
// embedded in response bodies; the cookies are the only delivery channel.
func (h *UserHandler) setAuthCookies(w http.ResponseWriter, pair *model.TokenPair) {
	http.SetCookie(w, h.authCookie(accessCookieName, pair.AccessToken, service.AccessTokenTTL))
	http.SetCookie(w, h.authCookie(refreshCookieName, pair.RefreshToken, service.RefreshTokenTTL))
}

func (h *UserHandler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.authCookie(accessCookieName, "", -time.Second))
	http.SetCookie(w, h.authCookie(refreshCookieName, "", -time.Second))
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates an account from multipart form fields plus avatar and cover image files
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        username    formData  string  true  "Username"
// @Param        email       formData  string  true  "Email"
// @Param        password    formData  string  true  "Password"
// @Param        avatar      formData  file    true  "Avatar image"
// @Param        coverImage  formData  file    true  "Cover image"
// @Success      201  {object}  model.User
// @Failure      400  {object}  common.AppError
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid multipart form", err)
	}

	req := model.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if !common.ValidateStruct(w, &req) {
		return nil
	}

	avatarFile, avatarHeader, err := r.FormFile("avatar")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Avatar image is required", err)
	}
	defer avatarFile.Close()

	coverFile, coverHeader, err := r.FormFile("coverImage")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Cover image is required", err)
	}
	defer coverFile.Close()

	avatarURL, err := h.uploader.Upload(r.Context(), avatarFile, avatarHeader.Header.Get("Content-Type"), "avatars")
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store avatar", err)
	}
	coverURL, err := h.uploader.Upload(r.Context(), coverFile, coverHeader.Header.Get("Content-Type"), "covers")
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store cover image", err)
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password, avatarURL, coverURL)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return common.NewAppError(http.StatusBadRequest, "User already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
	}

	logger.Log.WithField("user_id", user.ID.Hex()).Info("User registered")
	common.RespondJSON(w, http.StatusCreated, user)
	return nil
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and sets access and refresh token cookies
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.LoginRequest  true  "Credentials"
// @Success      200  {object}  model.User
// @Failure      401  {object}  common.AppError
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, user, err := h.sessions.Login(r.Context(), req.Email, req.Password, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not log in", err)
	}

	h.setAuthCookies(w, pair)
	common.RespondJSON(w, http.StatusOK, user)
	return nil
}

// Refresh godoc
// @Summary      Refresh the session
// @Description  Rotates the refresh token and sets a new cookie pair
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError
// @Router       /api/v1/users/refresh-token [post]
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	pair, err := h.sessions.Refresh(r.Context(), cookieValue(r, refreshCookieName), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingToken):
			return common.NewAppError(http.StatusUnauthorized, "Refresh token is missing", nil)
		case errors.Is(err, service.ErrInvalidRefreshToken):
			return common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh session", err)
		}
	}

	h.setAuthCookies(w, pair)
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Session refreshed"})
	return nil
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the stored refresh token and clears both cookies
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	err := h.sessions.Logout(r.Context(), cookieValue(r, refreshCookieName))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingToken):
			return common.NewAppError(http.StatusUnauthorized, "Refresh token is missing", nil)
		case errors.Is(err, service.ErrUnauthorized):
			return common.NewAppError(http.StatusUnauthorized, "Unauthorized", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not log out", err)
		}
	}

	h.clearAuthCookies(w)
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	return nil
}

// UpdatePassword godoc
// @Summary      Change the caller's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.UpdatePasswordRequest  true  "Old and new password"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/users/update-password [put]
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdatePasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update password", err)
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
	return nil
}

// Me godoc
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  model.User
// @Failure      401  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		// The token can outlive the account it was issued for.
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.NewAppError(http.StatusUnauthorized, "Unauthorized", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load user", err)
	}

	common.RespondJSON(w, http.StatusOK, user)
	return nil
}
