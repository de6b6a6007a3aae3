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

// HistoryRepository stores write-once notification history records. The
// records exist only for deduplication and audit; they are never updated.
type HistoryRepository struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{
		collection: db.Collection("notification_history"),
	}
}

// GetLatest returns the most recent history record for the exact
// (recipient, sender, type, targetType, targetID) key, or nil if none exists.
func (r *HistoryRepository) GetLatest(ctx context.Context, recipientID, senderID primitive.ObjectID, ntype models.NotificationType, targetType models.TargetType, targetID string) (*models.NotificationHistory, error) {
	filter := bson.M{
		"recipient_id": recipientID,
		"sender_id":    senderID,
		"type":         ntype,
		"target_type":  targetType,
		"target_id":    targetID,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "sent_at", Value: -1}})

	var record models.NotificationHistory
	err := r.collection.FindOne(ctx, filter, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification history: %w", err)
	}
	return &record, nil
}

// Insert appends a new history record.
func (r *HistoryRepository) Insert(ctx context.Context, record *models.NotificationHistory) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert notification history: %w", err)
	}
	return nil
}

// DeleteBefore removes every record sent before the cutoff. Deletion is by
// timestamp predicate, so an interrupted run converges on retry.
func (r *HistoryRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"sent_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notification history: %w", err)
	}
	return result.DeletedCount, nil
}
