package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestShouldSuppressWritesRecordOnFirstPass(t *testing.T) {
	store := &fakeHistoryStore{}
	dedup := NewDedupWindow(store, 10*time.Minute)
	ctx := context.Background()

	recipient := primitive.NewObjectID()
	sender := primitive.NewObjectID()
	target := primitive.NewObjectID().Hex()

	suppress, err := dedup.ShouldSuppress(ctx, recipient, sender, models.NotificationTypeLike, models.TargetTypePost, target)
	require.NoError(t, err)
	assert.False(t, suppress)
	assert.Equal(t, 1, store.count())

	suppress, err = dedup.ShouldSuppress(ctx, recipient, sender, models.NotificationTypeLike, models.TargetTypePost, target)
	require.NoError(t, err)
	assert.True(t, suppress)
	assert.Equal(t, 1, store.count(), "suppressed check must not add a record")
}

func TestConcurrentIdenticalEventsDeliverOnce(t *testing.T) {
	store := &fakeHistoryStore{}
	dedup := NewDedupWindow(store, 10*time.Minute)
	ctx := context.Background()

	recipient := primitive.NewObjectID()
	sender := primitive.NewObjectID()
	target := primitive.NewObjectID().Hex()

	const n = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	delivered := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suppress, err := dedup.ShouldSuppress(ctx, recipient, sender, models.NotificationTypeLike, models.TargetTypePost, target)
			assert.NoError(t, err)
			if !suppress {
				mu.Lock()
				delivered++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, delivered, "exactly one of the concurrent identical events may deliver")
	assert.Equal(t, 1, store.count())
}
