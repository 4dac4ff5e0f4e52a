package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Subscription links a subscriber to a channel. Channels are users.
type Subscription struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Channel    bson.ObjectID `bson:"channel" json:"channel"`
	Subscriber bson.ObjectID `bson:"subscriber" json:"subscriber"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
}

// SubscriptionWithChannel joins the channel's public profile fields for the
// subscription listing.
type SubscriptionWithChannel struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	Channel   struct {
		ID       bson.ObjectID `bson:"_id" json:"id"`
		Username string        `bson:"username" json:"username"`
		Avatar   string        `bson:"avatar" json:"avatar"`
	} `bson:"channel" json:"channel"`
}
