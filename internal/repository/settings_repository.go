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

type SettingsRepository struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{
		collection: db.Collection("notification_settings"),
	}
}

// GetByUser returns the user's settings row, or nil if none exists yet.
// A missing row is not an error; it means all types enabled.
func (r *SettingsRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification settings: %w", err)
	}
	return &settings, nil
}

// Upsert writes the full settings row for a user, creating it if absent.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.NotificationSettings) error {
	settings.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"comment_enabled": settings.CommentEnabled,
		"like_enabled":    settings.LikeEnabled,
		"follow_enabled":  settings.FollowEnabled,
		"system_enabled":  settings.SystemEnabled,
		"updated_at":      settings.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"user_id": settings.UserID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert notification settings: %w", err)
	}
	return nil
}
