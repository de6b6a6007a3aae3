package realtime

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yoonsu-park/community-board/internal/models"
)

// Conn is the slice of a websocket connection the hub needs. *websocket.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// PushPayload is the frame sent to a live connection. Type is either
// "notification" (full notification plus count) or "unread_count"
// (counter refresh only).
type PushPayload struct {
	Type             string                  `json:"type"`
	NotificationID   string                  `json:"notificationId,omitempty"`
	SenderID         string                  `json:"senderId,omitempty"`
	SenderNickname   string                  `json:"senderNickname,omitempty"`
	NotificationType models.NotificationType `json:"notificationType,omitempty"`
	Title            string                  `json:"title,omitempty"`
	Content          string                  `json:"content,omitempty"`
	TargetType       models.TargetType       `json:"targetType,omitempty"`
	TargetID         string                  `json:"targetId,omitempty"`
	Read             *bool                   `json:"read,omitempty"`
	CreatedAt        *time.Time              `json:"createdAt,omitempty"`
	UnreadCount      int64                   `json:"unreadCount"`
}

// Hub tracks which users currently hold a live push connection. It is
// written by connection handlers and read by every push attempt, so all
// access goes through the mutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]Conn // userID -> live connection
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]Conn)}
}

// Register binds a connection to its owning user. An existing connection
// for the same user is closed and replaced.
func (h *Hub) Register(userID string, conn Conn) {
	h.mu.Lock()
	old, ok := h.clients[userID]
	h.clients[userID] = conn
	h.mu.Unlock()

	if ok {
		_ = old.Close()
	}
	log.WithField("userID", userID).Info("Live connection registered")
}

// Unregister removes the user's connection, but only if it is still the
// same one; a reconnect that already replaced it is left alone.
func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	if current, ok := h.clients[userID]; ok && current == conn {
		delete(h.clients, userID)
	}
	h.mu.Unlock()
	log.WithField("userID", userID).Info("Live connection removed")
}

// IsConnected reports whether the user currently holds a live connection.
func (h *Hub) IsConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// PushNotification sends a freshly persisted notification with the
// recipient's unread count. Delivery is best effort: no connection means
// no push, and a write error only unregisters the dead connection. The
// stored notification row remains the source of truth either way.
func (h *Hub) PushNotification(userID string, notif *models.Notification, senderNickname string, unreadCount int64) {
	payload := PushPayload{
		Type:             "notification",
		NotificationID:   notif.ID.Hex(),
		SenderNickname:   senderNickname,
		NotificationType: notif.Type,
		Title:            notif.Title,
		Content:          notif.Content,
		TargetType:       notif.TargetType,
		TargetID:         notif.TargetID,
		Read:             &notif.Read,
		CreatedAt:        &notif.CreatedAt,
		UnreadCount:      unreadCount,
	}
	if notif.SenderID != nil {
		payload.SenderID = notif.SenderID.Hex()
	}
	h.push(userID, payload)
}

// PushUnreadCount refreshes only the recipient's unread counter.
func (h *Hub) PushUnreadCount(userID string, unreadCount int64) {
	h.push(userID, PushPayload{Type: "unread_count", UnreadCount: unreadCount})
}

func (h *Hub) push(userID string, payload PushPayload) {
	h.mu.RLock()
	conn, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(payload); err != nil {
		log.WithError(err).WithField("userID", userID).Warn("Push failed, dropping connection")
		h.Unregister(userID, conn)
		_ = conn.Close()
	}
}
