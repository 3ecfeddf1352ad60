package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

type CommentService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentView, error)
	Update(ctx context.Context, id, authorID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentView, error)
	Delete(ctx context.Context, id, authorID uuid.UUID) error
	List(ctx context.Context, filter repository.CommentFilter, page, limit int) (*dto.PaginatedCommentsResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentView, error) {
	if _, err := s.postRepo.FindByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}

	comment := entity.Comment{
		PostID: req.PostID,
		UserID: userID,
		Text:   sanitizeText(req.Text),
	}
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}

	// Re-read for the author preload the view needs.
	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	view := toCommentView(created)
	return &view, nil
}

func (s *commentService) Update(ctx context.Context, id, authorID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentView, error) {
	comment, err := s.commentRepo.FindByIDForAuthor(ctx, id, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "comment not found")
		}
		return nil, err
	}

	comment.Text = sanitizeText(req.Text)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	view := toCommentView(comment)
	return &view, nil
}

func (s *commentService) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	if _, err := s.commentRepo.FindByIDForAuthor(ctx, id, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "comment not found")
		}
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}

func (s *commentService) List(ctx context.Context, filter repository.CommentFilter, page, limit int) (*dto.PaginatedCommentsResponse, error) {
	if filter.PostID != nil {
		if _, err := s.postRepo.FindByID(ctx, *filter.PostID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.ErrNotFound, "post not found")
			}
			return nil, err
		}
	}

	offset := (page - 1) * limit
	comments, total, err := s.commentRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	views := make([]dto.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, toCommentView(&comments[i]))
	}
	return &dto.PaginatedCommentsResponse{
		Comments: views,
		Meta:     newPaginationMeta(page, limit, total),
	}, nil
}
