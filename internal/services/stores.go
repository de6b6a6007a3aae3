package services

import (
	"context"
	"errors"
	"time"

	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidNotificationType is returned when a caller names a
	// notification type outside the known set.
	ErrInvalidNotificationType = errors.New("invalid notification type")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NotificationStore is the persistence surface the notification service
// needs. *repository.NotificationRepository implements it.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
}

// HistoryStore is implemented by *repository.HistoryRepository.
type HistoryStore interface {
	GetLatest(ctx context.Context, recipientID, senderID primitive.ObjectID, ntype models.NotificationType, targetType models.TargetType, targetID string) (*models.NotificationHistory, error)
	Insert(ctx context.Context, record *models.NotificationHistory) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SettingsStore is implemented by *repository.SettingsRepository.
type SettingsStore interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.NotificationSettings, error)
	Upsert(ctx context.Context, settings *models.NotificationSettings) error
}

// UserStore is implemented by *repository.UserRepository.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Pusher is the live-delivery surface. *realtime.Hub implements it.
type Pusher interface {
	PushNotification(userID string, notif *models.Notification, senderNickname string, unreadCount int64)
	PushUnreadCount(userID string, unreadCount int64)
}
