package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingsService manages per-user notification preferences. A user without
// a settings row has everything enabled; the row is created lazily on first
// read.
type SettingsService struct {
	repo SettingsStore
}

func NewSettingsService(repo SettingsStore) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings returns the user's settings, creating the default row if absent.
func (s *SettingsService) GetSettings(ctx context.Context, userID primitive.ObjectID) (*models.NotificationSettings, error) {
	settings, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = models.DefaultNotificationSettings(userID)
	if err := s.repo.Upsert(ctx, settings); err != nil {
		// The defaults are still valid without the row; creation retries
		// on the next access.
		log.WithError(err).WithField("userID", userID.Hex()).Warn("Failed to create default notification settings")
	}
	return settings, nil
}

// IsEnabled reports whether the user accepts notifications of the given type.
func (s *SettingsService) IsEnabled(ctx context.Context, userID primitive.ObjectID, ntype models.NotificationType) (bool, error) {
	settings, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if settings == nil {
		return true, nil
	}
	return settings.Enabled(ntype), nil
}

// UpdateSettings replaces all four flags at once.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID primitive.ObjectID, comment, like, follow, system bool) (*models.NotificationSettings, error) {
	settings := &models.NotificationSettings{
		UserID:         userID,
		CommentEnabled: comment,
		LikeEnabled:    like,
		FollowEnabled:  follow,
		SystemEnabled:  system,
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}

// ToggleType flips a single type's flag and returns the updated settings.
// An unknown type name is a caller error.
func (s *SettingsService) ToggleType(ctx context.Context, userID primitive.ObjectID, rawType string) (*models.NotificationSettings, error) {
	ntype := models.NotificationType(rawType)
	if !ntype.IsValid() {
		return nil, ErrInvalidNotificationType
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings.SetEnabled(ntype, !settings.Enabled(ntype))
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to toggle setting: %w", err)
	}
	return settings, nil
}

// ResetSettings restores the all-enabled defaults.
func (s *SettingsService) ResetSettings(ctx context.Context, userID primitive.ObjectID) (*models.NotificationSettings, error) {
	settings := models.DefaultNotificationSettings(userID)
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to reset settings: %w", err)
	}
	return settings, nil
}
