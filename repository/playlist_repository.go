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

// IPlaylistRepository defines the contract for playlist document operations.
type IPlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylistsByOwner(ctx context.Context, owner bson.ObjectID) ([]*model.Playlist, error)
	AddVideo(ctx context.Context, playlistID, owner, videoID bson.ObjectID) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, id, owner bson.ObjectID) error
}

type PlaylistRepository struct {
	collection *mongo.Collection
}

func NewPlaylistRepository(database *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{collection: database.Collection("playlists")}
}

func (r *PlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	now := time.Now().UTC()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	if playlist.Videos == nil {
		playlist.Videos = []bson.ObjectID{}
	}

	res, err := r.collection.InsertOne(ctx, playlist)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert playlist")
		return err
	}

	playlist.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *PlaylistRepository) GetPlaylistsByOwner(ctx context.Context, owner bson.ObjectID) ([]*model.Playlist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list playlists")
		return nil, err
	}
	defer cursor.Close(ctx)

	playlists := []*model.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// AddVideo appends a video to an owned playlist. $addToSet keeps the video
// list duplicate-free. Returns mongo.ErrNoDocuments when the playlist does
// not exist or belongs to someone else.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, owner, videoID bson.ObjectID) (*model.Playlist, error) {
	playlist := &model.Playlist{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": playlistID, "owner": owner},
		bson.M{
			"$addToSet": bson.M{"videos": videoID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(playlist)
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

func (r *PlaylistRepository) DeletePlaylist(ctx context.Context, id, owner bson.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to delete playlist")
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
