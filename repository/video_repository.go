package repository

import (
	"context"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// VideoFilter narrows and orders the video listing. SortBy uses a leading
// '-' for descending order, e.g. "-views".
type VideoFilter struct {
	Category string
	MinViews int64
	SortBy   string
	Page     int64
	Limit    int64
}

// IVideoRepository defines the contract for video document operations.
type IVideoRepository interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	GetVideoByID(ctx context.Context, id bson.ObjectID) (*model.Video, error)
	IncrementViews(ctx context.Context, id bson.ObjectID) (*model.Video, error)
	ListVideos(ctx context.Context, filter VideoFilter) ([]*model.Video, error)
	GetVideoStats(ctx context.Context) ([]*model.VideoStats, error)
	DeleteVideo(ctx context.Context, id, owner bson.ObjectID) error
}

type VideoRepository struct {
	collection *mongo.Collection
}

func NewVideoRepository(database *mongo.Database) *VideoRepository {
	return &VideoRepository{collection: database.Collection("videos")}
}

func (r *VideoRepository) CreateVideo(ctx context.Context, video *model.Video) error {
	log := logger.Log.WithFields(logrus.Fields{
		"title": video.Title,
		"owner": video.Owner.Hex(),
	})
	log.Info("Executing insert for a new video")

	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		log.WithError(err).Error("Failed to insert video")
		return err
	}

	video.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *VideoRepository) GetVideoByID(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	video := &model.Video{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(video)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// IncrementViews bumps the view counter and returns the updated document.
func (r *VideoRepository) IncrementViews(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	video := &model.Video{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(video)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// ListVideos runs an aggregation pipeline applying the optional category and
// minimum-view filters, the requested sort, and skip/limit pagination.
func (r *VideoRepository) ListVideos(ctx context.Context, filter VideoFilter) ([]*model.Video, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"category": filter.Category,
		"page":     filter.Page,
		"limit":    filter.Limit,
	})
	log.Info("Executing video listing aggregation")

	pipeline := mongo.Pipeline{}

	if filter.Category != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"category": filter.Category}}})
	}
	if filter.MinViews > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"views": bson.M{"$gte": filter.MinViews}}}})
	}

	if filter.SortBy != "" {
		order := 1
		field := filter.SortBy
		if strings.HasPrefix(field, "-") {
			order = -1
			field = strings.TrimPrefix(field, "-")
		}
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: field, Value: order}}}})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$skip", Value: (page - 1) * limit}},
		bson.D{{Key: "$limit", Value: limit}},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		log.WithError(err).Error("Failed to execute video listing aggregation")
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []*model.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetVideoStats aggregates total views and video count per category,
// most-viewed categories first.
func (r *VideoRepository) GetVideoStats(ctx context.Context) ([]*model.VideoStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$category",
			"total_views": bson.M{"$sum": "$views"},
			"video_count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "total_views", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute video stats aggregation")
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []*model.VideoStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteVideo removes a video owned by the caller. Returns
// mongo.ErrNoDocuments when the video does not exist or is owned by
// someone else; callers must not distinguish the two.
func (r *VideoRepository) DeleteVideo(ctx context.Context, id, owner bson.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to delete video")
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
