package repository

import (
	"context"
	"errors"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrDuplicateKey is returned when an insert violates a unique index
// (email, username, one like per video, one subscription per channel).
var ErrDuplicateKey = errors.New("duplicate key")

// IUserRepository defines the contract for user document operations.
// It doubles as the credential store: the password hash and the single
// active refresh token live on the user document.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByRefreshToken(ctx context.Context, token string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, id bson.ObjectID, token string) error
	UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
}

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{collection: database.Collection("users")}
}

// CreateUser inserts a new user document. The caller is responsible for
// hashing the password before constructing the user.
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	log := logger.Log.WithField("email", user.Email)
	log.Info("Executing insert for a new user")

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		log.WithError(err).Error("Failed to insert user")
		return err
	}

	user.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		return nil, err // mongo.ErrNoDocuments when absent
	}
	return user, nil
}

// GetUserByRefreshToken finds the account whose stored refresh token
// byte-for-byte equals the presented one.
func (r *UserRepository) GetUserByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOne(ctx, bson.M{"refresh_token": token}).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRefreshToken overwrites the stored refresh token for an account.
// Passing an empty string clears it (logout); a non-empty value silently
// supersedes whatever was stored before (login, rotation).
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	log := logger.Log.WithField("user_id", id.Hex())
	log.Info("Executing update of the stored refresh token")

	update := bson.M{"$set": bson.M{"refresh_token": token, "updated_at": time.Now().UTC()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		log.WithError(err).Error("Failed to update refresh token")
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	log := logger.Log.WithField("user_id", id.Hex())
	log.Info("Executing update of the password hash")

	update := bson.M{"$set": bson.M{"password": passwordHash, "updated_at": time.Now().UTC()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		log.WithError(err).Error("Failed to update password hash")
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
