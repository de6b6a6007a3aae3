package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Domain events emitted by the board's CRUD services. The notification
// subsystem only consumes them; it never produces them.

type CommentCreatedEvent struct {
	PostID         primitive.ObjectID
	AuthorID       primitive.ObjectID
	AuthorNickname string
	RecipientIDs   []primitive.ObjectID
}

type LikedEvent struct {
	TargetType    TargetType
	TargetID      primitive.ObjectID
	ActorID       primitive.ObjectID
	ActorNickname string
	OwnerID       primitive.ObjectID
}

type FollowedEvent struct {
	FollowerID       primitive.ObjectID
	FollowerNickname string
	FolloweeID       primitive.ObjectID
}

type SystemAnnouncementEvent struct {
	RecipientID primitive.ObjectID
	Title       string
	Content     string
}
