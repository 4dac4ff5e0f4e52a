package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is an account document. The password hash and the currently active
// refresh token are never exposed in JSON responses.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string        `bson:"username" json:"username"`
	Email        string        `bson:"email" json:"email"`
	Password     string        `bson:"password" json:"-"`
	Avatar       string        `bson:"avatar" json:"avatar"`
	CoverImage   string        `bson:"cover_image" json:"cover_image"`
	RefreshToken string        `bson:"refresh_token,omitempty" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}
