package repository

import (
	"context"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ISubscriptionRepository defines the contract for subscription operations.
type ISubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	DeleteSubscription(ctx context.Context, channel, subscriber bson.ObjectID) error
	GetSubscriptionsBySubscriber(ctx context.Context, subscriber bson.ObjectID) ([]*model.SubscriptionWithChannel, error)
}

type SubscriptionRepository struct {
	collection *mongo.Collection
}

func NewSubscriptionRepository(database *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{collection: database.Collection("subscriptions")}
}

// CreateSubscription inserts a subscription; the unique
// (channel, subscriber) index turns a double-subscribe into ErrDuplicateKey.
func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	sub.CreatedAt = time.Now().UTC()

	res, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		logger.Log.WithError(err).Error("Failed to insert subscription")
		return err
	}

	sub.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, channel, subscriber bson.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"channel": channel, "subscriber": subscriber})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to delete subscription")
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetSubscriptionsBySubscriber lists the caller's subscriptions with the
// channel's public profile joined in.
func (r *SubscriptionRepository) GetSubscriptionsBySubscriber(ctx context.Context, subscriber bson.ObjectID) ([]*model.SubscriptionWithChannel, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"subscriber": subscriber}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "channel",
			"foreignField": "_id",
			"as":           "channel",
		}}},
		bson.D{{Key: "$unwind", Value: "$channel"}},
		bson.D{{Key: "$project", Value: bson.M{
			"created_at":       1,
			"channel._id":      1,
			"channel.username": 1,
			"channel.avatar":   1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute subscription listing aggregation")
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []*model.SubscriptionWithChannel{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
