package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Video struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Category    string        `bson:"category" json:"category"`
	VideoFile   string        `bson:"video_file" json:"video_file"`
	Thumbnail   string        `bson:"thumbnail" json:"thumbnail"`
	Views       int64         `bson:"views" json:"views"`
	IsPublished bool          `bson:"is_published" json:"is_published"`
	Owner       bson.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// VideoStats is one row of the per-category aggregation.
type VideoStats struct {
	Category   string `bson:"_id" json:"category"`
	TotalViews int64  `bson:"total_views" json:"total_views"`
	VideoCount int64  `bson:"video_count" json:"video_count"`
}
