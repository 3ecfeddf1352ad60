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

type PostService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostView, error)
	Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*dto.PostView, error)
	List(ctx context.Context, viewerID *uuid.UUID, page, limit int) (*dto.PaginatedPostsResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID, page, limit int) (*dto.UserPostsResponse, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostView, error)
	AddImages(ctx context.Context, id, ownerID uuid.UUID, urls []string) (*dto.AddImagesResponse, error)
	RemoveImage(ctx context.Context, id, ownerID uuid.UUID, url string) (*dto.PostView, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type postService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	tagService   TagService
	notification NotificationService
	decorator    postDecorator
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, likeRepo repository.LikeRepository, commentRepo repository.CommentRepository, tagService TagService, notification NotificationService) PostService {
	return &postService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		tagService:   tagService,
		notification: notification,
		decorator:    postDecorator{likeRepo: likeRepo, commentRepo: commentRepo},
	}
}

func (s *postService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostView, error) {
	if len(req.Images) > entity.MaxPostImages {
		return nil, apperror.WithDetails(apperror.ErrValidation, "too many images", map[string]any{
			"max_images": entity.MaxPostImages,
		})
	}

	post := entity.Post{
		UserID:  ownerID,
		Title:   sanitizeText(req.Title),
		Caption: sanitizeText(req.Caption),
		Images:  buildImages(req.Images, 0),
	}
	if err := s.postRepo.Create(ctx, &post); err != nil {
		return nil, err
	}

	if err := s.tagService.ExtractAndAttach(ctx, post.ID, post.Caption); err != nil {
		return nil, err
	}

	created, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if err := s.notification.FanOutNewPost(ctx, created); err != nil {
		log.Printf("new post fan-out failed for post %s: %v", post.ID, err)
	}

	view, err := s.decorator.decorate(ctx, created, &ownerID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*dto.PostView, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}
	view, err := s.decorator.decorate(ctx, post, viewerID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *postService) List(ctx context.Context, viewerID *uuid.UUID, page, limit int) (*dto.PaginatedPostsResponse, error) {
	offset := (page - 1) * limit
	posts, total, err := s.postRepo.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	views, err := s.decorator.decorateAll(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedPostsResponse{
		Posts: views,
		Meta:  newPaginationMeta(page, limit, total),
	}, nil
}

func (s *postService) ListByUser(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID, page, limit int) (*dto.UserPostsResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	offset := (page - 1) * limit
	posts, total, err := s.postRepo.FindAllByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	views, err := s.decorator.decorateAll(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	return &dto.UserPostsResponse{
		User:  toUserPublic(user),
		Posts: views,
		Meta:  newPaginationMeta(page, limit, total),
	}, nil
}

func (s *postService) Update(ctx context.Context, id, ownerID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostView, error) {
	post, err := s.ownedPost(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	captionChanged := false
	if req.Title != nil {
		post.Title = sanitizeText(*req.Title)
	}
	if req.Caption != nil {
		caption := sanitizeText(*req.Caption)
		captionChanged = caption != post.Caption
		post.Caption = caption
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if req.Images != nil {
		if len(req.Images) > entity.MaxPostImages {
			return nil, apperror.WithDetails(apperror.ErrValidation, "too many images", map[string]any{
				"max_images": entity.MaxPostImages,
			})
		}
		if err := s.postRepo.ReplaceImages(ctx, post.ID, buildImages(req.Images, 0)); err != nil {
			return nil, err
		}
	}

	// A caption edit rebuilds the tag links from scratch.
	if captionChanged {
		if err := s.tagService.DetachAll(ctx, post.ID); err != nil {
			return nil, err
		}
		if err := s.tagService.ExtractAndAttach(ctx, post.ID, post.Caption); err != nil {
			return nil, err
		}
	}

	updated, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view, err := s.decorator.decorate(ctx, updated, &ownerID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *postService) AddImages(ctx context.Context, id, ownerID uuid.UUID, urls []string) (*dto.AddImagesResponse, error) {
	post, err := s.ownedPost(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	available := entity.MaxPostImages - len(post.Images)
	if len(urls) > available {
		return nil, apperror.WithDetails(apperror.ErrValidation, "image limit exceeded", map[string]any{
			"available_slots": available,
			"max_images":      entity.MaxPostImages,
		})
	}

	images := append(post.Images, buildImages(urls, len(post.Images))...)
	if err := s.postRepo.ReplaceImages(ctx, post.ID, images); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view, err := s.decorator.decorate(ctx, updated, &ownerID)
	if err != nil {
		return nil, err
	}
	return &dto.AddImagesResponse{
		Post:        view,
		AddedCount:  len(urls),
		TotalImages: len(updated.Images),
	}, nil
}

func (s *postService) RemoveImage(ctx context.Context, id, ownerID uuid.UUID, url string) (*dto.PostView, error) {
	post, err := s.ownedPost(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	kept := make([]entity.PostImage, 0, len(post.Images))
	found := false
	for _, img := range post.Images {
		if img.URL == url {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return nil, apperror.New(apperror.ErrNotFound, "image not found on post")
	}

	// ReplaceImages re-packs positions contiguously from zero.
	if err := s.postRepo.ReplaceImages(ctx, post.ID, kept); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view, err := s.decorator.decorate(ctx, updated, &ownerID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *postService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	post, err := s.ownedPost(ctx, id, ownerID)
	if err != nil {
		return err
	}
	// Tag links go first; the tags themselves stay for other posts.
	if err := s.tagService.DetachAll(ctx, post.ID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, post.ID)
}

func (s *postService) ownedPost(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error) {
	post, err := s.postRepo.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}
	return post, nil
}

func buildImages(urls []string, startPos int) []entity.PostImage {
	images := make([]entity.PostImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, entity.PostImage{
			URL:      u,
			Position: startPos + i,
		})
	}
	return images
}
