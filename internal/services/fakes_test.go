package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores standing in for the mongo repositories.

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (f *fakeNotificationStore) CreateNotification(_ context.Context, notif *models.Notification) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notif.ID = primitive.NewObjectID()
	notif.Read = false
	notif.CreatedAt = time.Now()
	f.notifications = append(f.notifications, *notif)
	return notif, nil
}

func (f *fakeNotificationStore) GetUserNotifications(_ context.Context, recipientID primitive.ObjectID) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Notification{}
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, recipientID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var updated int64
	for i := range f.notifications {
		if f.notifications[i].RecipientID == recipientID && !f.notifications[i].Read {
			f.notifications[i].Read = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, recipientID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

type fakeHistoryStore struct {
	mu      sync.Mutex
	records []models.NotificationHistory
}

func (f *fakeHistoryStore) GetLatest(_ context.Context, recipientID, senderID primitive.ObjectID, ntype models.NotificationType, targetType models.TargetType, targetID string) (*models.NotificationHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.NotificationHistory
	for i := range f.records {
		r := &f.records[i]
		if r.RecipientID == recipientID && r.SenderID == senderID && r.Type == ntype &&
			r.TargetType == targetType && r.TargetID == targetID {
			if latest == nil || r.SentAt.After(latest.SentAt) {
				latest = r
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeHistoryStore) Insert(_ context.Context, record *models.NotificationHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record.ID = primitive.NewObjectID()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	var deleted int64
	for _, r := range f.records {
		if r.SentAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

// backdate shifts every stored record's SentAt into the past, simulating
// the passage of time.
func (f *fakeHistoryStore) backdate(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		f.records[i].SentAt = f.records[i].SentAt.Add(-d)
	}
}

func (f *fakeHistoryStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeSettingsStore struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.NotificationSettings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{rows: make(map[primitive.ObjectID]models.NotificationSettings)}
}

func (f *fakeSettingsStore) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.NotificationSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[userID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeSettingsStore) Upsert(_ context.Context, settings *models.NotificationSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	settings.UpdatedAt = time.Now()
	f.rows[settings.UserID] = *settings
	return nil
}

// recordingPusher captures push attempts instead of writing to a socket.
type recordingPusher struct {
	mu            sync.Mutex
	notifications []pushedNotification
	counts        []pushedCount
}

type pushedNotification struct {
	userID         string
	notification   models.Notification
	senderNickname string
	unreadCount    int64
}

type pushedCount struct {
	userID      string
	unreadCount int64
}

func (p *recordingPusher) PushNotification(userID string, notif *models.Notification, senderNickname string, unreadCount int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, pushedNotification{
		userID:         userID,
		notification:   *notif,
		senderNickname: senderNickname,
		unreadCount:    unreadCount,
	})
}

func (p *recordingPusher) PushUnreadCount(userID string, unreadCount int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts = append(p.counts, pushedCount{userID: userID, unreadCount: unreadCount})
}
