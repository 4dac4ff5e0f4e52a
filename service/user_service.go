package service

import (
	"context"
	"errors"
	"fmt"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrUserExists is returned when the email or username is already taken.
var ErrUserExists = errors.New("user already exists")

// UserService handles account creation and password changes.
type UserService struct {
	userRepo repository.IUserRepository
}

func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. The password is hashed here, explicitly,
// before the document is constructed; nothing hashes it implicitly on save.
func (s *UserService) Register(ctx context.Context, username, email, password, avatarURL, coverURL string) (*model.User, error) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := &model.User{
		Username:   strings.ToLower(strings.TrimSpace(username)),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Password:   hashedPassword,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// GetByID returns the account for an authenticated caller.
func (s *UserService) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// ChangePassword verifies the old password before hashing and storing the
// new one. A wrong old password reports the same uniform credential error
// as login.
func (s *UserService) ChangePassword(ctx context.Context, id bson.ObjectID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("could not look up account: %w", err)
	}

	match, err := CheckPasswordHash(oldPassword, user.Password)
	if err != nil {
		return fmt.Errorf("stored password digest is malformed: %w", err)
	}
	if !match {
		return ErrInvalidCredentials
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, id, hashedPassword)
}
