package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType is the closed set of notification categories.
type NotificationType string

const (
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeSystem  NotificationType = "system"
)

// IsValid reports whether t is one of the known notification types.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeComment, NotificationTypeLike, NotificationTypeFollow, NotificationTypeSystem:
		return true
	}
	return false
}

// TargetType identifies what kind of entity a notification points at.
type TargetType string

const (
	TargetTypePost    TargetType = "post"
	TargetTypeComment TargetType = "comment"
	TargetTypeUser    TargetType = "user"
	TargetTypeNone    TargetType = "none"
)

type Notification struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID  `bson:"recipient_id" json:"recipient_id"`
	SenderID    *primitive.ObjectID `bson:"sender_id,omitempty" json:"sender_id,omitempty"`
	Type        NotificationType    `bson:"type" json:"type"`
	Title       string              `bson:"title" json:"title"`
	Content     string              `bson:"content" json:"content"`
	TargetType  TargetType          `bson:"target_type" json:"target_type"`
	TargetID    string              `bson:"target_id" json:"target_id"`
	Read        bool                `bson:"read" json:"read"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
}

// NotificationHistory is a write-once audit record used for deduplication.
// It is never updated; old records are removed by the retention sweeper.
type NotificationHistory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Type        NotificationType   `bson:"type" json:"type"`
	TargetType  TargetType         `bson:"target_type" json:"target_type"`
	TargetID    string             `bson:"target_id" json:"target_id"`
	SentAt      time.Time          `bson:"sent_at" json:"sent_at"`
}

// NotificationSettings holds one row per user. A missing row means all enabled.
type NotificationSettings struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	CommentEnabled bool               `bson:"comment_enabled" json:"comment_enabled"`
	LikeEnabled    bool               `bson:"like_enabled" json:"like_enabled"`
	FollowEnabled  bool               `bson:"follow_enabled" json:"follow_enabled"`
	SystemEnabled  bool               `bson:"system_enabled" json:"system_enabled"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// DefaultNotificationSettings returns the all-enabled defaults for a user.
func DefaultNotificationSettings(userID primitive.ObjectID) *NotificationSettings {
	return &NotificationSettings{
		UserID:         userID,
		CommentEnabled: true,
		LikeEnabled:    true,
		FollowEnabled:  true,
		SystemEnabled:  true,
	}
}

// Enabled reports whether notifications of the given type are enabled.
func (s *NotificationSettings) Enabled(t NotificationType) bool {
	switch t {
	case NotificationTypeComment:
		return s.CommentEnabled
	case NotificationTypeLike:
		return s.LikeEnabled
	case NotificationTypeFollow:
		return s.FollowEnabled
	case NotificationTypeSystem:
		return s.SystemEnabled
	}
	return false
}

// SetEnabled flips a single type's flag.
func (s *NotificationSettings) SetEnabled(t NotificationType, enabled bool) {
	switch t {
	case NotificationTypeComment:
		s.CommentEnabled = enabled
	case NotificationTypeLike:
		s.LikeEnabled = enabled
	case NotificationTypeFollow:
		s.FollowEnabled = enabled
	case NotificationTypeSystem:
		s.SystemEnabled = enabled
	}
}
