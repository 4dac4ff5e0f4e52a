package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Playlist struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Videos    []bson.ObjectID `bson:"videos" json:"videos"`
	Owner     bson.ObjectID   `bson:"owner" json:"owner"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}
