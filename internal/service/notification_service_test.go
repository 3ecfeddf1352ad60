package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

func TestNotificationService_NotifyLike_SkipsOwnPost(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	svc := NewNotificationService(notifRepo, new(MockFollowRepository), nil)

	ownerID := uuid.New()
	post := &entity.Post{ID: uuid.New(), UserID: ownerID}

	err := svc.NotifyLike(context.Background(), ownerID, post)
	assert.NoError(t, err)
	notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotificationService_Get_ScopedToRecipient(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	svc := NewNotificationService(notifRepo, new(MockFollowRepository), nil)

	userID := uuid.New()
	actor := &entity.User{ID: uuid.New(), FullName: "Nour"}
	row := &entity.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		ActorID: actor.ID,
		Actor:   actor,
		Type:    entity.NotificationTypeFollow,
	}
	notifRepo.On("FindForUser", ctx(), row.ID, userID).Return(row, nil)

	view, err := svc.Get(context.Background(), row.ID, userID)
	assert.NoError(t, err)
	assert.Equal(t, row.ID, view.ID)
	assert.Equal(t, "Nour", view.Actor.FullName)

	// Another recipient never sees the row.
	otherID := uuid.New()
	notifRepo.On("FindForUser", ctx(), row.ID, otherID).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.Get(context.Background(), row.ID, otherID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNotificationService_NotifyLike_CreatesRow(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	svc := NewNotificationService(notifRepo, new(MockFollowRepository), nil)

	actorID := uuid.New()
	post := &entity.Post{ID: uuid.New(), UserID: uuid.New()}

	notifRepo.On("Create", ctx(), mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == post.UserID &&
			n.ActorID == actorID &&
			n.Type == entity.NotificationTypeLike &&
			n.PostID != nil && *n.PostID == post.ID
	})).Return(nil)

	err := svc.NotifyLike(context.Background(), actorID, post)
	assert.NoError(t, err)
	notifRepo.AssertExpectations(t)
}

func TestNotificationService_FanOutNewPost(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	followRepo := new(MockFollowRepository)
	svc := NewNotificationService(notifRepo, followRepo, nil)

	authorID := uuid.New()
	post := &entity.Post{ID: uuid.New(), UserID: authorID}
	followers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	followRepo.On("FollowerIDs", ctx(), authorID).Return(followers, nil)
	notifRepo.On("CreateBatch", ctx(), mock.MatchedBy(func(rows []entity.Notification) bool {
		if len(rows) != len(followers) {
			return false
		}
		for i, row := range rows {
			if row.UserID != followers[i] || row.ActorID != authorID || row.Type != entity.NotificationTypeMention {
				return false
			}
		}
		return true
	})).Return(nil)

	err := svc.FanOutNewPost(context.Background(), post)
	assert.NoError(t, err)
	notifRepo.AssertExpectations(t)
}

func TestNotificationService_FanOutNewPost_NoFollowers(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	followRepo := new(MockFollowRepository)
	svc := NewNotificationService(notifRepo, followRepo, nil)

	post := &entity.Post{ID: uuid.New(), UserID: uuid.New()}
	followRepo.On("FollowerIDs", ctx(), post.UserID).Return([]uuid.UUID{}, nil)

	err := svc.FanOutNewPost(context.Background(), post)
	assert.NoError(t, err)
	notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}
