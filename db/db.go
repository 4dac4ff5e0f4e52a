package db

import (
	"context"
	"fmt"
	"go-vidtube-api/config"
	"go-vidtube-api/logger"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

func Connect() (*mongo.Client, error) {
	cfg := config.AppConfig.Database

	logger.Log.WithField("database", cfg.Name).Info("Attempting to connect to MongoDB")

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to create MongoDB client")
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Log.WithError(err).Error("Failed to ping MongoDB")
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Log.Info("MongoDB connection established successfully")
	return client, nil
}

// EnsureIndexes creates the unique indexes the application relies on:
// one account per email/username, one like per (video, user) and one
// subscription per (channel, subscriber).
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := database.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = database.Collection("likes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "video", Value: 1}, {Key: "owner", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create like index: %w", err)
	}

	_, err = database.Collection("subscriptions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "channel", Value: 1}, {Key: "subscriber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription index: %w", err)
	}

	logger.Log.Info("MongoDB indexes ensured")
	return nil
}
