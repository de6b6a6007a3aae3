package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/yoonsu-park/community-board/internal/events"
	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnnouncementHandler lets administrators push system notifications.
type AnnouncementHandler struct {
	Dispatcher *events.Dispatcher
}

func NewAnnouncementHandler(dispatcher *events.Dispatcher) *AnnouncementHandler {
	return &AnnouncementHandler{Dispatcher: dispatcher}
}

// POST /api/admin/announcements
func (h *AnnouncementHandler) CreateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipientIDs []string `json:"recipient_ids"`
		Title        string   `json:"title"`
		Content      string   `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Title == "" || len(req.RecipientIDs) == 0 {
		http.Error(w, "Title and recipients are required", http.StatusBadRequest)
		return
	}

	sent := 0
	for _, raw := range req.RecipientIDs {
		recipientID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			http.Error(w, "Invalid recipient id", http.StatusBadRequest)
			return
		}
		err = h.Dispatcher.Dispatch(r.Context(), models.SystemAnnouncementEvent{
			RecipientID: recipientID,
			Title:       req.Title,
			Content:     req.Content,
		})
		if err != nil {
			log.WithError(err).WithField("recipientID", raw).Error("Failed to create announcement")
			http.Error(w, "Failed to create announcement", http.StatusInternalServerError)
			return
		}
		sent++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"sent": sent})
}
