package service

import (
	"errors"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed at build time; it is not tunable per call.
const bcryptCost = 12

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenMalformed  = errors.New("token is malformed or has an invalid signature")
	ErrTokenExpired    = errors.New("token has expired")
	ErrWrongTokenClass = errors.New("token class does not match the expected class")
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether the password matches the digest.
// A mismatch is (false, nil); a non-nil error means the digest itself is
// malformed, which is an internal consistency problem and never a user error.
func CheckPasswordHash(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// TokenCodec signs and verifies the compact, time-bounded tokens carrying
// an account identifier. Each token class has its own signing secret; the
// secrets are loaded once at startup and injected here, never looked up
// from ambient configuration.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenCodec(accessSecret, refreshSecret string) *TokenCodec {
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (c *TokenCodec) secret(class model.TokenClass) []byte {
	if class == model.TokenClassRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

// TTL returns the validity window for a token class: 15 minutes for access
// tokens, 7 days for refresh tokens.
func (c *TokenCodec) TTL(class model.TokenClass) time.Duration {
	if class == model.TokenClassRefresh {
		return RefreshTokenTTL
	}
	return AccessTokenTTL
}

// Issue produces a signed token for the account, valid from now until
// now plus the class TTL.
func (c *TokenCodec) Issue(userID string, class model.TokenClass, now time.Time) (string, error) {
	claims := &model.AppClaims{
		UserID:     userID,
		TokenClass: string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti keeps two tokens issued within the same second
			// distinct, so rotation always invalidates the previous token.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL(class))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret(class))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign token")
		return "", err
	}

	return tokenString, nil
}

// Verify checks a token against the expected class and returns the embedded
// account identifier. It is a pure function of the token, the class and now;
// it never consults a store, which is why access tokens cannot be revoked
// before their natural expiry.
func (c *TokenCodec) Verify(tokenString string, class model.TokenClass, now time.Time) (string, error) {
	claims := &model.AppClaims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// The claims are decoded before the signature check, so a class
		// mismatch can be reported precisely even though each class is
		// verified against its own secret.
		if claims.TokenClass != string(class) {
			return nil, ErrWrongTokenClass
		}
		return c.secret(class), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongTokenClass):
			return "", ErrWrongTokenClass
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid {
		return "", ErrTokenMalformed
	}

	// The library treats exp as exclusive only for instants strictly after
	// it; the boundary instant itself must already count as expired.
	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return "", ErrTokenExpired
	}

	return claims.UserID, nil
}
