package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a board member. Only the fields the notification
// subsystem needs are modeled here; profile data lives elsewhere.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nickname       string             `bson:"nickname" json:"nickname"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Nickname string             `json:"nickname"`
	Email    string             `json:"email"`
}
