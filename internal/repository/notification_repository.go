package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification in unread state.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) (*models.Notification, error) {
	notif.Read = false
	notif.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	notif.ID = result.InsertedID.(primitive.ObjectID)
	return notif, nil
}

// GetUserNotifications returns all notifications for a recipient, newest first.
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error) {
	filter := bson.M{"recipient_id": recipientID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkAllRead flips every unread notification of the recipient to read.
// Running it again is a no-op, so the operation is idempotent.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	filter := bson.M{"recipient_id": recipientID, "read": false}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.ModifiedCount, nil
}

// CountUnread returns the recipient's current unread notification count.
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
