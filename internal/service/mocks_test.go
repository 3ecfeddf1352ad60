package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
)

// ctx matches any context argument in mock expectations.
func ctx() any { return mock.Anything }

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindNotFollowedBy(ctx context.Context, userID uuid.UUID) ([]entity.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, keyword string, limit int) ([]entity.User, error) {
	args := m.Called(ctx, keyword, limit)
	return args.Get(0).([]entity.User), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) FindAll(ctx context.Context, offset, limit int) ([]entity.Post, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) FindAllByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.Post, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).([]entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) FindTopLiked(ctx context.Context, limit int) ([]entity.Post, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Post, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) ReplaceImages(ctx context.Context, postID uuid.UUID, images []entity.PostImage) error {
	args := m.Called(ctx, postID, images)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, keyword string, limit int) ([]entity.Post, error) {
	args := m.Called(ctx, keyword, limit)
	return args.Get(0).([]entity.Post), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, userID, postID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID, postID)
	return args.String(0), args.Error(1)
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) ListForPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]entity.Like, int64, error) {
	args := m.Called(ctx, postID, offset, limit)
	return args.Get(0).([]entity.Like), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Like, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.Like), args.Error(1)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *entity.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID uuid.UUID) ([]entity.Follow, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.Follow), args.Error(1)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID uuid.UUID) ([]entity.Follow, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.Follow), args.Error(1)
}

func (m *MockFollowRepository) FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByIDForAuthor(ctx context.Context, id, authorID uuid.UUID) (*entity.Comment, error) {
	args := m.Called(ctx, id, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) List(ctx context.Context, filter repository.CommentFilter, offset, limit int) ([]entity.Comment, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	return args.Get(0).([]entity.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, name string) (*entity.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) ListWithCounts(ctx context.Context, offset, limit int) ([]repository.TagWithCount, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]repository.TagWithCount), args.Get(1).(int64), args.Error(2)
}

func (m *MockTagRepository) CountPosts(ctx context.Context, tagID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagRepository) Search(ctx context.Context, keyword string, limit int) ([]entity.Tag, error) {
	args := m.Called(ctx, keyword, limit)
	return args.Get(0).([]entity.Tag), args.Error(1)
}

func (m *MockTagRepository) LinkExists(ctx context.Context, postID, tagID uuid.UUID) (bool, error) {
	args := m.Called(ctx, postID, tagID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) Attach(ctx context.Context, postID, tagID uuid.UUID) error {
	args := m.Called(ctx, postID, tagID)
	return args.Error(0)
}

func (m *MockTagRepository) Detach(ctx context.Context, postID, tagID uuid.UUID) error {
	args := m.Called(ctx, postID, tagID)
	return args.Error(0)
}

func (m *MockTagRepository) DetachAll(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockTagRepository) LinkedTagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockTagRepository) TagsForPost(ctx context.Context, postID uuid.UUID) ([]entity.Tag, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]entity.Tag), args.Error(1)
}

func (m *MockTagRepository) PostsForTag(ctx context.Context, tagID uuid.UUID, offset, limit int) ([]entity.Post, int64, error) {
	args := m.Called(ctx, tagID, offset, limit)
	return args.Get(0).([]entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockTagRepository) SearchPostsByTagName(ctx context.Context, keyword string, limit int) ([]entity.Post, error) {
	args := m.Called(ctx, keyword, limit)
	return args.Get(0).([]entity.Post), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []entity.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.Notification, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).([]entity.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) SetRead(ctx context.Context, id, userID uuid.UUID, read bool) error {
	args := m.Called(ctx, id, userID, read)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockNotificationService stands in for the notification generator when
// testing the services that emit notifications.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyLike(ctx context.Context, actorID uuid.UUID, post *entity.Post) error {
	args := m.Called(ctx, actorID, post)
	return args.Error(0)
}

func (m *MockNotificationService) NotifyFollow(ctx context.Context, actorID, followeeID uuid.UUID) error {
	args := m.Called(ctx, actorID, followeeID)
	return args.Error(0)
}

func (m *MockNotificationService) FanOutNewPost(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.PaginatedNotificationsResponse, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedNotificationsResponse), args.Error(1)
}

func (m *MockNotificationService) Get(ctx context.Context, id, userID uuid.UUID) (*dto.NotificationView, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationView), args.Error(1)
}

func (m *MockNotificationService) SetRead(ctx context.Context, id, userID uuid.UUID, read bool) error {
	args := m.Called(ctx, id, userID, read)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
