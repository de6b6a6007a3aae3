package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yoonsu-park/community-board/internal/services"
	"github.com/yoonsu-park/community-board/pkg/logger"
	"github.com/yoonsu-park/community-board/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SettingsHandler struct {
	Service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: service}
}

func (h *SettingsHandler) userID(r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// GET /api/notifications/settings
func (h *SettingsHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	settings, err := h.Service.GetSettings(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch settings: %v", err)
		http.Error(w, "Failed to get settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// PUT /api/notifications/settings
func (h *SettingsHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		CommentEnabled bool `json:"comment_enabled"`
		LikeEnabled    bool `json:"like_enabled"`
		FollowEnabled  bool `json:"follow_enabled"`
		SystemEnabled  bool `json:"system_enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	settings, err := h.Service.UpdateSettings(r.Context(), userID, req.CommentEnabled, req.LikeEnabled, req.FollowEnabled, req.SystemEnabled)
	if err != nil {
		logger.Log.Errorf("Failed to update settings: %v", err)
		http.Error(w, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// PUT /api/notifications/settings/{type}
func (h *SettingsHandler) ToggleSettingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rawType := mux.Vars(r)["type"]
	settings, err := h.Service.ToggleType(r.Context(), userID, rawType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidNotificationType) {
			http.Error(w, "Invalid notification type", http.StatusBadRequest)
			return
		}
		logger.Log.Errorf("Failed to toggle setting: %v", err)
		http.Error(w, "Failed to toggle setting", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// POST /api/notifications/settings/reset
func (h *SettingsHandler) ResetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	settings, err := h.Service.ResetSettings(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to reset settings: %v", err)
		http.Error(w, "Failed to reset settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}
