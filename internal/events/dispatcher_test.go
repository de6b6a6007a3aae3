package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoonsu-park/community-board/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingNotifier struct {
	comments      []models.CommentCreatedEvent
	likes         []models.LikedEvent
	follows       []models.FollowedEvent
	announcements []models.SystemAnnouncementEvent
}

func (r *recordingNotifier) HandleCommentCreated(_ context.Context, ev models.CommentCreatedEvent) error {
	r.comments = append(r.comments, ev)
	return nil
}

func (r *recordingNotifier) HandleLiked(_ context.Context, ev models.LikedEvent) error {
	r.likes = append(r.likes, ev)
	return nil
}

func (r *recordingNotifier) HandleFollowed(_ context.Context, ev models.FollowedEvent) error {
	r.follows = append(r.follows, ev)
	return nil
}

func (r *recordingNotifier) HandleSystemAnnouncement(_ context.Context, ev models.SystemAnnouncementEvent) error {
	r.announcements = append(r.announcements, ev)
	return nil
}

func TestDispatchRoutesEachEventType(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := NewDispatcher(notifier)
	ctx := context.Background()

	require.NoError(t, dispatcher.Dispatch(ctx, models.CommentCreatedEvent{PostID: primitive.NewObjectID()}))
	require.NoError(t, dispatcher.Dispatch(ctx, models.LikedEvent{TargetType: models.TargetTypePost}))
	require.NoError(t, dispatcher.Dispatch(ctx, models.FollowedEvent{FollowerNickname: "현우"}))
	require.NoError(t, dispatcher.Dispatch(ctx, models.SystemAnnouncementEvent{Title: "공지"}))

	assert.Len(t, notifier.comments, 1)
	assert.Len(t, notifier.likes, 1)
	assert.Len(t, notifier.follows, 1)
	assert.Len(t, notifier.announcements, 1)
}

func TestDispatchRejectsUnknownEvent(t *testing.T) {
	dispatcher := NewDispatcher(&recordingNotifier{})

	err := dispatcher.Dispatch(context.Background(), struct{ Name string }{Name: "mystery"})
	assert.Error(t, err)
}
