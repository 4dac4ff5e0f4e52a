package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string        `bson:"content" json:"content"`
	Video     bson.ObjectID `bson:"video" json:"video"`
	Owner     bson.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// CommentWithUser is the projection returned by the video comment listing,
// joining the commenter's public profile fields.
type CommentWithUser struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	Content   string        `bson:"content" json:"content"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	Commenter struct {
		Username string `bson:"username" json:"username"`
		Avatar   string `bson:"avatar" json:"avatar"`
	} `bson:"commenter" json:"commenter"`
}
