package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func historyRecord(sentAt time.Time) *models.NotificationHistory {
	return &models.NotificationHistory{
		RecipientID: primitive.NewObjectID(),
		SenderID:    primitive.NewObjectID(),
		Type:        models.NotificationTypeLike,
		TargetType:  models.TargetTypePost,
		TargetID:    primitive.NewObjectID().Hex(),
		SentAt:      sentAt,
	}
}

func TestSweepRemovesOnlyAgedRecords(t *testing.T) {
	store := &fakeHistoryStore{}
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Insert(ctx, historyRecord(now.Add(-40*24*time.Hour))))
	require.NoError(t, store.Insert(ctx, historyRecord(now.Add(-31*24*time.Hour))))
	require.NoError(t, store.Insert(ctx, historyRecord(now.Add(-time.Hour))))

	service := NewRetentionService(store, 30*24*time.Hour)
	require.NoError(t, service.Sweep(ctx))
	assert.Equal(t, 1, store.count(), "records past the cutoff are removed, recent ones retained")

	// A second run converges to the same state.
	require.NoError(t, service.Sweep(ctx))
	assert.Equal(t, 1, store.count())
}
