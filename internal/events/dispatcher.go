package events

import (
	"context"
	"fmt"

	"github.com/yoonsu-park/community-board/internal/models"
)

// Notifier is what the dispatcher needs from the notification service.
type Notifier interface {
	HandleCommentCreated(ctx context.Context, event models.CommentCreatedEvent) error
	HandleLiked(ctx context.Context, event models.LikedEvent) error
	HandleFollowed(ctx context.Context, event models.FollowedEvent) error
	HandleSystemAnnouncement(ctx context.Context, event models.SystemAnnouncementEvent) error
}

// Dispatcher is the single seam through which the board's CRUD services
// hand domain events to the notification subsystem.
type Dispatcher struct {
	notifier Notifier
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

// Dispatch routes a typed domain event to its handler.
func (d *Dispatcher) Dispatch(ctx context.Context, event interface{}) error {
	switch ev := event.(type) {
	case models.CommentCreatedEvent:
		return d.notifier.HandleCommentCreated(ctx, ev)
	case models.LikedEvent:
		return d.notifier.HandleLiked(ctx, ev)
	case models.FollowedEvent:
		return d.notifier.HandleFollowed(ctx, ev)
	case models.SystemAnnouncementEvent:
		return d.notifier.HandleSystemAnnouncement(ctx, ev)
	default:
		return fmt.Errorf("unknown event type %T", event)
	}
}
