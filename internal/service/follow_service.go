package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*dto.FollowListResponse, error)
	Following(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*dto.FollowListResponse, error)
	Suggested(ctx context.Context, userID uuid.UUID) (*dto.SuggestedUsersResponse, error)
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
}

type followService struct {
	followRepo   repository.FollowRepository
	userRepo     repository.UserRepository
	notification NotificationService
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, notification NotificationService) FollowService {
	return &followService{
		followRepo:   followRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return apperror.New(apperror.ErrValidation, "you cannot follow yourself")
	}

	if _, err := s.userRepo.FindByID(ctx, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "user not found")
		}
		return err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.New(apperror.ErrConflict, "already following this user")
	}

	follow := entity.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      entity.FollowStatusAccepted,
	}
	if err := s.followRepo.Create(ctx, &follow); err != nil {
		// The unique index backstops the race between the check above
		// and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.New(apperror.ErrConflict, "already following this user")
		}
		return err
	}

	if err := s.notification.NotifyFollow(ctx, followerID, followingID); err != nil {
		log.Printf("follow notification failed for user %s: %v", followingID, err)
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if err := s.followRepo.Delete(ctx, followerID, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "you are not following this user")
		}
		return err
	}
	return nil
}

func (s *followService) Followers(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*dto.FollowListResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	edges, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.FollowEdgeView, 0, len(edges))
	for i := range edges {
		view := dto.FollowEdgeView{
			ID:        edges[i].ID,
			User:      toUserPublic(&edges[i].Follower),
			Status:    edges[i].Status,
			CreatedAt: edges[i].CreatedAt,
		}
		if viewerID != nil {
			followed, err := s.followRepo.Exists(ctx, *viewerID, edges[i].FollowerID)
			if err != nil {
				return nil, err
			}
			view.User.IsFollowed = &followed
		}
		views = append(views, view)
	}
	return &dto.FollowListResponse{Count: int64(len(views)), Edges: views}, nil
}

func (s *followService) Following(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*dto.FollowListResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	edges, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.FollowEdgeView, 0, len(edges))
	for i := range edges {
		view := dto.FollowEdgeView{
			ID:        edges[i].ID,
			User:      toUserPublic(&edges[i].Following),
			Status:    edges[i].Status,
			CreatedAt: edges[i].CreatedAt,
		}
		if viewerID != nil {
			followed, err := s.followRepo.Exists(ctx, *viewerID, edges[i].FollowingID)
			if err != nil {
				return nil, err
			}
			view.User.IsFollowed = &followed
		}
		views = append(views, view)
	}
	return &dto.FollowListResponse{Count: int64(len(views)), Edges: views}, nil
}

func (s *followService) Suggested(ctx context.Context, userID uuid.UUID) (*dto.SuggestedUsersResponse, error) {
	users, err := s.userRepo.FindNotFollowedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.UserPublic, 0, len(users))
	for i := range users {
		views = append(views, toUserPublic(&users[i]))
	}
	return &dto.SuggestedUsersResponse{Count: int64(len(views)), Users: views}, nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

func (s *followService) requireUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "user not found")
		}
		return err
	}
	return nil
}
