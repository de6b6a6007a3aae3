package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dedupStripes = 64

// DedupWindow suppresses a second identical-key notification inside the
// configured window. The check-and-record step is serialized per key with a
// striped mutex so two concurrent identical events cannot both pass; the
// process owns all notification generation, so in-process locking suffices.
type DedupWindow struct {
	window  time.Duration
	history HistoryStore
	locks   [dedupStripes]sync.Mutex
}

func NewDedupWindow(history HistoryStore, window time.Duration) *DedupWindow {
	return &DedupWindow{
		window:  window,
		history: history,
	}
}

// ShouldSuppress reports whether an equivalent notification was already sent
// inside the window. When it was not, a new history record is written before
// returning, under the same per-key lock as the check.
func (d *DedupWindow) ShouldSuppress(ctx context.Context, recipientID, senderID primitive.ObjectID, ntype models.NotificationType, targetType models.TargetType, targetID string) (bool, error) {
	lock := d.lockFor(recipientID, senderID, ntype, targetType, targetID)
	lock.Lock()
	defer lock.Unlock()

	latest, err := d.history.GetLatest(ctx, recipientID, senderID, ntype, targetType, targetID)
	if err != nil {
		return false, fmt.Errorf("dedup lookup failed: %w", err)
	}
	if latest != nil && time.Since(latest.SentAt) < d.window {
		return true, nil
	}

	record := &models.NotificationHistory{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        ntype,
		TargetType:  targetType,
		TargetID:    targetID,
		SentAt:      time.Now(),
	}
	if err := d.history.Insert(ctx, record); err != nil {
		return false, fmt.Errorf("dedup record failed: %w", err)
	}
	return false, nil
}

func (d *DedupWindow) lockFor(recipientID, senderID primitive.ObjectID, ntype models.NotificationType, targetType models.TargetType, targetID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(recipientID.Hex()))
	h.Write([]byte(senderID.Hex()))
	h.Write([]byte(ntype))
	h.Write([]byte(targetType))
	h.Write([]byte(targetID))
	return &d.locks[h.Sum32()%dedupStripes]
}
