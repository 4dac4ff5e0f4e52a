package repository

import (
	"context"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ICommentRepository defines the contract for comment document operations.
// Update and delete are owner-scoped: the filter matches both the comment id
// and the owner, so "not found" and "not yours" are indistinguishable.
type ICommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentsByVideo(ctx context.Context, videoID bson.ObjectID) ([]*model.CommentWithUser, error)
	UpdateComment(ctx context.Context, id, owner bson.ObjectID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id, owner bson.ObjectID) error
}

type CommentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(database *mongo.Database) *CommentRepository {
	return &CommentRepository{collection: database.Collection("comments")}
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert comment")
		return err
	}

	comment.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// GetCommentsByVideo joins each comment with its author's public profile
// via $lookup and projects only the fields the listing needs.
func (r *CommentRepository) GetCommentsByVideo(ctx context.Context, videoID bson.ObjectID) ([]*model.CommentWithUser, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"video": videoID}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "commenter",
		}}},
		bson.D{{Key: "$unwind", Value: "$commenter"}},
		bson.D{{Key: "$project", Value: bson.M{
			"content":            1,
			"created_at":         1,
			"commenter.username": 1,
			"commenter.avatar":   1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute comment listing aggregation")
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []*model.CommentWithUser{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) UpdateComment(ctx context.Context, id, owner bson.ObjectID, content string) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(comment)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id, owner bson.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to delete comment")
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
