package repository

import (
	"context"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ILikeRepository defines the contract for like document operations.
type ILikeRepository interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, videoID, owner bson.ObjectID) (bool, error)
	CountLikesByVideo(ctx context.Context, videoID bson.ObjectID) (int64, error)
}

type LikeRepository struct {
	collection *mongo.Collection
}

func NewLikeRepository(database *mongo.Database) *LikeRepository {
	return &LikeRepository{collection: database.Collection("likes")}
}

func (r *LikeRepository) CreateLike(ctx context.Context, like *model.Like) error {
	like.CreatedAt = time.Now().UTC()

	res, err := r.collection.InsertOne(ctx, like)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		logger.Log.WithError(err).Error("Failed to insert like")
		return err
	}

	like.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// DeleteLike removes the caller's like on a video. The boolean reports
// whether a like existed, which drives the toggle semantics.
func (r *LikeRepository) DeleteLike(ctx context.Context, videoID, owner bson.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"video": videoID, "owner": owner})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to delete like")
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *LikeRepository) CountLikesByVideo(ctx context.Context, videoID bson.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"video": videoID})
}
