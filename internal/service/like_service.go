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

type LikeService interface {
	Toggle(ctx context.Context, userID, postID uuid.UUID) (*dto.ToggleLikeResponse, error)
	Check(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeCheckResponse, error)
	PostLikes(ctx context.Context, postID uuid.UUID, page, limit int) (*dto.PostLikesResponse, error)
	MyLikes(ctx context.Context, userID uuid.UUID) ([]dto.PostView, error)
	TopPosts(ctx context.Context, viewerID *uuid.UUID, limit int) ([]dto.PostView, error)
}

type likeService struct {
	likeRepo     repository.LikeRepository
	postRepo     repository.PostRepository
	notification NotificationService
	decorator    postDecorator
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository, notification NotificationService) LikeService {
	return &likeService{
		likeRepo:     likeRepo,
		postRepo:     postRepo,
		notification: notification,
		decorator:    postDecorator{likeRepo: likeRepo, commentRepo: commentRepo},
	}
}

func (s *likeService) Toggle(ctx context.Context, userID, postID uuid.UUID) (*dto.ToggleLikeResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}

	action, err := s.likeRepo.Toggle(ctx, userID, postID)
	if err != nil {
		// Two first-time toggles on the same pair can both pass the
		// row probe; the loser hits the composite unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.ErrConflict, "post already liked")
		}
		return nil, err
	}

	if action == repository.LikeAdded {
		if err := s.notification.NotifyLike(ctx, userID, post); err != nil {
			// The like itself stands; notification loss is tolerable.
			log.Printf("like notification failed for post %s: %v", postID, err)
		}
	}

	count, err := s.likeRepo.CountForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleLikeResponse{
		Action:     action,
		PostID:     postID,
		LikesCount: count,
	}, nil
}

func (s *likeService) Check(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeCheckResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}
	liked, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeCheckResponse{
		IsLiked: liked,
		PostID:  postID,
		UserID:  userID,
	}, nil
}

func (s *likeService) PostLikes(ctx context.Context, postID uuid.UUID, page, limit int) (*dto.PostLikesResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}

	offset := (page - 1) * limit
	likes, total, err := s.likeRepo.ListForPost(ctx, postID, offset, limit)
	if err != nil {
		return nil, err
	}

	likers := make([]dto.UserPublic, 0, len(likes))
	for i := range likes {
		likers = append(likers, toUserPublic(&likes[i].User))
	}
	return &dto.PostLikesResponse{
		PostID:     postID,
		Likers:     likers,
		TotalLikes: total,
		Meta:       newPaginationMeta(page, limit, total),
	}, nil
}

func (s *likeService) MyLikes(ctx context.Context, userID uuid.UUID) ([]dto.PostView, error) {
	likes, err := s.likeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts := make([]entity.Post, 0, len(likes))
	for i := range likes {
		posts = append(posts, likes[i].Post)
	}
	return s.decorator.decorateAll(ctx, posts, &userID)
}

// TopPosts returns the most liked posts overall, most liked first.
func (s *likeService) TopPosts(ctx context.Context, viewerID *uuid.UUID, limit int) ([]dto.PostView, error) {
	posts, err := s.postRepo.FindTopLiked(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.decorator.decorateAll(ctx, posts, viewerID)
}
