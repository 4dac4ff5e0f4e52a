package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like records that a user liked a video. A unique index on (video, owner)
// guarantees at most one like per user per video.
type Like struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Video     bson.ObjectID `bson:"video" json:"video"`
	Owner     bson.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}
