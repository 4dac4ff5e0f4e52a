package service

import (
	"context"
	"errors"
	"fmt"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password". Callers must not be able to tell them apart, to avoid
	// account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("token is missing")
	// ErrInvalidRefreshToken covers expired, malformed, wrong-class and
	// superseded refresh tokens uniformly.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUnauthorized        = errors.New("unauthorized")
)

// SessionService orchestrates login, refresh, logout and access
// verification. An account is Anonymous when no refresh token is stored on
// its document and Active when one is; at most one refresh token is valid
// per account at any time.
type SessionService struct {
	userRepo repository.IUserRepository
	codec    *TokenCodec
}

func NewSessionService(userRepo repository.IUserRepository, codec *TokenCodec) *SessionService {
	return &SessionService{userRepo: userRepo, codec: codec}
}

func (s *SessionService) issuePair(userID string, now time.Time) (*model.TokenPair, error) {
	accessToken, err := s.codec.Issue(userID, model.TokenClassAccess, now)
	if err != nil {
		return nil, fmt.Errorf("could not issue access token: %w", err)
	}
	refreshToken, err := s.codec.Issue(userID, model.TokenClassRefresh, now)
	if err != nil {
		return nil, fmt.Errorf("could not issue refresh token: %w", err)
	}
	return &model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login verifies the credentials and issues a fresh token pair. The new
// refresh token overwrites any previously stored one, so logging in again
// invalidates the prior session.
func (s *SessionService) Login(ctx context.Context, email, password string, now time.Time) (*model.TokenPair, *model.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("could not look up account: %w", err)
	}

	match, err := CheckPasswordHash(password, user.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("stored password digest is malformed: %w", err)
	}
	if !match {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.ID.Hex(), now)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, fmt.Errorf("could not persist refresh token: %w", err)
	}

	logger.Log.WithField("user_id", user.ID.Hex()).Info("User logged in")
	return pair, user, nil
}

// Refresh rotates a valid refresh token into a brand-new pair. The old
// token becomes permanently unusable even though it has not
// cryptographically expired. A presented token that verifies but no longer
// matches the stored one is a replay of a superseded token and is rejected.
//
// Refresh is not idempotent: two concurrent calls with the same token race,
// and only the last rotation written to the store is honored afterwards.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string, now time.Time) (*model.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	userID, err := s.codec.Verify(refreshToken, model.TokenClassRefresh, now)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("could not look up account: %w", err)
	}

	if user.RefreshToken != refreshToken {
		logger.Log.WithField("user_id", user.ID.Hex()).Warn("Superseded refresh token presented")
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.issuePair(user.ID.Hex(), now)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("could not persist rotated refresh token: %w", err)
	}

	return pair, nil
}

// VerifyAccess validates an access token and returns the account
// identifier. This path never touches the store: revoking a session only
// takes effect once the access token expires and its holder tries to
// refresh.
func (s *SessionService) VerifyAccess(token string, now time.Time) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	userID, err := s.codec.Verify(token, model.TokenClassAccess, now)
	if err != nil {
		return "", ErrUnauthorized
	}
	return userID, nil
}

// Logout clears the stored refresh token of the account it belongs to,
// returning the account to the Anonymous state.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrMissingToken
	}

	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUnauthorized
		}
		return fmt.Errorf("could not look up account: %w", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
		return fmt.Errorf("could not clear refresh token: %w", err)
	}

	logger.Log.WithField("user_id", user.ID.Hex()).Info("User logged out")
	return nil
}
