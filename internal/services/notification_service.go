package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// notificationTemplate is the pinned wording for one (type, target) pair.
// Content takes the actor's nickname.
type notificationTemplate struct {
	title   string
	content string
}

// templates maps each notification type and target to its fixed wording.
// Adding a type means adding a table entry, nothing else.
var templates = map[models.NotificationType]map[models.TargetType]notificationTemplate{
	models.NotificationTypeComment: {
		models.TargetTypePost: {title: "새 댓글", content: "%s님이 댓글을 남겼습니다."},
	},
	models.NotificationTypeLike: {
		models.TargetTypePost:    {title: "새 좋아요", content: "%s님이 회원님의 게시글을 좋아합니다."},
		models.TargetTypeComment: {title: "새 좋아요", content: "%s님이 회원님의 댓글을 좋아합니다."},
	},
	models.NotificationTypeFollow: {
		models.TargetTypeUser: {title: "새 팔로워", content: "%s님이 회원님을 팔로우하기 시작했습니다."},
	},
}

// NotificationService turns domain events into persisted notifications and
// best-effort live pushes, and serves the read path.
type NotificationService struct {
	repo     NotificationStore
	settings *SettingsService
	dedup    *DedupWindow
	hub      Pusher
}

func NewNotificationService(repo NotificationStore, settings *SettingsService, dedup *DedupWindow, hub Pusher) *NotificationService {
	return &NotificationService{
		repo:     repo,
		settings: settings,
		dedup:    dedup,
		hub:      hub,
	}
}

// HandleCommentCreated notifies every subscriber of the post, except the
// comment's author.
func (s *NotificationService) HandleCommentCreated(ctx context.Context, event models.CommentCreatedEvent) error {
	for _, recipientID := range event.RecipientIDs {
		if recipientID == event.AuthorID {
			continue
		}
		err := s.generate(ctx, recipientID, event.AuthorID, event.AuthorNickname,
			models.NotificationTypeComment, models.TargetTypePost, event.PostID.Hex())
		if err != nil {
			return err
		}
	}
	return nil
}

// HandleLiked notifies the owner of the liked post or comment.
func (s *NotificationService) HandleLiked(ctx context.Context, event models.LikedEvent) error {
	if event.ActorID == event.OwnerID {
		return nil
	}
	return s.generate(ctx, event.OwnerID, event.ActorID, event.ActorNickname,
		models.NotificationTypeLike, event.TargetType, event.TargetID.Hex())
}

// HandleFollowed notifies the followee.
func (s *NotificationService) HandleFollowed(ctx context.Context, event models.FollowedEvent) error {
	if event.FollowerID == event.FolloweeID {
		return nil
	}
	return s.generate(ctx, event.FolloweeID, event.FollowerID, event.FollowerNickname,
		models.NotificationTypeFollow, models.TargetTypeUser, event.FollowerID.Hex())
}

// HandleSystemAnnouncement persists a system notification. System events
// bypass both the settings check and the dedup window.
func (s *NotificationService) HandleSystemAnnouncement(ctx context.Context, event models.SystemAnnouncementEvent) error {
	notif := &models.Notification{
		RecipientID: event.RecipientID,
		Type:        models.NotificationTypeSystem,
		Title:       event.Title,
		Content:     event.Content,
		TargetType:  models.TargetTypeNone,
	}
	created, err := s.repo.CreateNotification(ctx, notif)
	if err != nil {
		return err
	}
	s.pushAfterCommit(ctx, created, "")
	return nil
}

// generate runs the settings and dedup gates, persists the notification and
// attempts the live push.
func (s *NotificationService) generate(ctx context.Context, recipientID, senderID primitive.ObjectID, senderNickname string, ntype models.NotificationType, targetType models.TargetType, targetID string) error {
	enabled, err := s.settings.IsEnabled(ctx, recipientID, ntype)
	if err != nil {
		return fmt.Errorf("settings lookup failed: %w", err)
	}
	if !enabled {
		return nil
	}

	suppress, err := s.dedup.ShouldSuppress(ctx, recipientID, senderID, ntype, targetType, targetID)
	if err != nil {
		return err
	}
	if suppress {
		log.WithFields(log.Fields{
			"recipientID": recipientID.Hex(),
			"type":        ntype,
			"targetID":    targetID,
		}).Debug("Duplicate notification suppressed")
		return nil
	}

	tmpl, ok := templates[ntype][targetType]
	if !ok {
		return fmt.Errorf("no template for notification type %q on target %q", ntype, targetType)
	}

	notif := &models.Notification{
		RecipientID: recipientID,
		SenderID:    &senderID,
		Type:        ntype,
		Title:       tmpl.title,
		Content:     fmt.Sprintf(tmpl.content, senderNickname),
		TargetType:  targetType,
		TargetID:    targetID,
	}
	created, err := s.repo.CreateNotification(ctx, notif)
	if err != nil {
		return err
	}

	s.pushAfterCommit(ctx, created, senderNickname)
	return nil
}

// pushAfterCommit attempts the live push for an already persisted
// notification. Failures are logged and never reach the caller; the stored
// row is the durable outcome.
func (s *NotificationService) pushAfterCommit(ctx context.Context, notif *models.Notification, senderNickname string) {
	unread, err := s.repo.CountUnread(ctx, notif.RecipientID)
	if err != nil {
		log.WithError(err).WithField("recipientID", notif.RecipientID.Hex()).Warn("Unread count unavailable, skipping live push")
		return
	}
	s.hub.PushNotification(notif.RecipientID.Hex(), notif, senderNickname, unread)
}

// GetUserNotifications lists the user's notifications, newest first.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkAllRead flips every unread notification of the user to read and pushes
// the refreshed (zero) unread counter to the live connection, if any.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.hub.PushUnreadCount(userID.Hex(), 0)
	return updated, nil
}

// UnreadCount returns the user's current number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
