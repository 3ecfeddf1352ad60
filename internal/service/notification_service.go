package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

// NotificationChannel is the Redis pub/sub channel prefix; the full
// channel name is NotificationChannel + recipient UUID.
const NotificationChannel = "user_notifications:"

type NotificationService interface {
	NotifyLike(ctx context.Context, actorID uuid.UUID, post *entity.Post) error
	NotifyFollow(ctx context.Context, actorID, followeeID uuid.UUID) error
	FanOutNewPost(ctx context.Context, post *entity.Post) error

	List(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.PaginatedNotificationsResponse, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*dto.NotificationView, error)
	SetRead(ctx context.Context, id, userID uuid.UUID, read bool) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type notificationService struct {
	notifRepo   repository.NotificationRepository
	followRepo  repository.FollowRepository
	redisClient *redis.Client
}

func NewNotificationService(notifRepo repository.NotificationRepository, followRepo repository.FollowRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		notifRepo:   notifRepo,
		followRepo:  followRepo,
		redisClient: redisClient,
	}
}

func (s *notificationService) NotifyLike(ctx context.Context, actorID uuid.UUID, post *entity.Post) error {
	// Liking your own post makes no noise.
	if post.UserID == actorID {
		return nil
	}

	postID := post.ID
	notif := entity.Notification{
		UserID:  post.UserID,
		ActorID: actorID,
		Type:    entity.NotificationTypeLike,
		PostID:  &postID,
	}
	if err := s.notifRepo.Create(ctx, &notif); err != nil {
		return err
	}
	s.publish(ctx, &notif)
	return nil
}

func (s *notificationService) NotifyFollow(ctx context.Context, actorID, followeeID uuid.UUID) error {
	notif := entity.Notification{
		UserID:  followeeID,
		ActorID: actorID,
		Type:    entity.NotificationTypeFollow,
	}
	if err := s.notifRepo.Create(ctx, &notif); err != nil {
		return err
	}
	s.publish(ctx, &notif)
	return nil
}

func (s *notificationService) FanOutNewPost(ctx context.Context, post *entity.Post) error {
	followerIDs, err := s.followRepo.FollowerIDs(ctx, post.UserID)
	if err != nil {
		return err
	}
	if len(followerIDs) == 0 {
		return nil
	}

	postID := post.ID
	notifs := make([]entity.Notification, 0, len(followerIDs))
	for _, followerID := range followerIDs {
		notifs = append(notifs, entity.Notification{
			UserID:  followerID,
			ActorID: post.UserID,
			Type:    entity.NotificationTypeMention,
			PostID:  &postID,
		})
	}
	if err := s.notifRepo.CreateBatch(ctx, notifs); err != nil {
		return err
	}
	for i := range notifs {
		s.publish(ctx, &notifs[i])
	}
	return nil
}

// publish pushes the row onto the recipient's live channel. Delivery is
// best effort; the row is already persisted.
func (s *notificationService) publish(ctx context.Context, notif *entity.Notification) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(notif)
	if err != nil {
		return
	}
	channel := fmt.Sprintf("%s%s", NotificationChannel, notif.UserID.String())
	if err := s.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("notification publish failed on %s: %v", channel, err)
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.PaginatedNotificationsResponse, error) {
	offset := (page - 1) * limit
	notifs, total, err := s.notifRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.NotificationView, 0, len(notifs))
	for i := range notifs {
		views = append(views, toNotificationView(&notifs[i]))
	}
	return &dto.PaginatedNotificationsResponse{
		Notifications: views,
		UnreadCount:   unread,
		Meta:          newPaginationMeta(page, limit, total),
	}, nil
}

func (s *notificationService) Get(ctx context.Context, id, userID uuid.UUID) (*dto.NotificationView, error) {
	notif, err := s.notifRepo.FindForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "notification not found")
		}
		return nil, err
	}
	view := toNotificationView(notif)
	return &view, nil
}

func (s *notificationService) SetRead(ctx context.Context, id, userID uuid.UUID, read bool) error {
	if err := s.notifRepo.SetRead(ctx, id, userID, read); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "notification not found")
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.notifRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "notification not found")
		}
		return err
	}
	return nil
}

func toNotificationView(n *entity.Notification) dto.NotificationView {
	view := dto.NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Actor != nil {
		view.Actor = toUserPublic(n.Actor)
	}
	return view
}
