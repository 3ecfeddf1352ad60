package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags pulls the normalized hashtag names out of free text:
// trimmed, lower-cased, truncated to the tag name limit, first
// occurrence wins.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.ToLower(strings.TrimSpace(m[1]))
		if name == "" {
			continue
		}
		if len(name) > entity.MaxTagNameLen {
			name = name[:entity.MaxTagNameLen]
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

type TagService interface {
	ExtractAndAttach(ctx context.Context, postID uuid.UUID, text string) error
	DetachAll(ctx context.Context, postID uuid.UUID) error

	Attach(ctx context.Context, postID, ownerID, tagID uuid.UUID) error
	Detach(ctx context.Context, postID, ownerID, tagID uuid.UUID) error
	Sync(ctx context.Context, postID, ownerID uuid.UUID, tagIDs []uuid.UUID) (*dto.SyncTagsResponse, error)

	List(ctx context.Context, page, limit int) (*dto.PaginatedTagsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TagView, error)
	PostsByTag(ctx context.Context, tagID uuid.UUID, viewerID *uuid.UUID, page, limit int) (*dto.TagPostsResponse, error)
	TagsForPost(ctx context.Context, postID uuid.UUID) ([]dto.TagView, error)
}

type tagService struct {
	tagRepo   repository.TagRepository
	postRepo  repository.PostRepository
	decorator postDecorator
}

func NewTagService(tagRepo repository.TagRepository, postRepo repository.PostRepository, likeRepo repository.LikeRepository, commentRepo repository.CommentRepository) TagService {
	return &tagService{
		tagRepo:   tagRepo,
		postRepo:  postRepo,
		decorator: postDecorator{likeRepo: likeRepo, commentRepo: commentRepo},
	}
}

func (s *tagService) ExtractAndAttach(ctx context.Context, postID uuid.UUID, text string) error {
	for _, name := range ExtractHashtags(text) {
		tag, err := s.tagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		linked, err := s.tagRepo.LinkExists(ctx, postID, tag.ID)
		if err != nil {
			return err
		}
		if linked {
			continue
		}
		if err := s.tagRepo.Attach(ctx, postID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *tagService) DetachAll(ctx context.Context, postID uuid.UUID) error {
	return s.tagRepo.DetachAll(ctx, postID)
}

// ownedPost resolves a post scoped to its owner. Missing and not-owned
// both come back as not found.
func (s *tagService) ownedPost(ctx context.Context, postID, ownerID uuid.UUID) error {
	_, err := s.postRepo.FindByIDForOwner(ctx, postID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "post not found")
		}
		return err
	}
	return nil
}

func (s *tagService) Attach(ctx context.Context, postID, ownerID, tagID uuid.UUID) error {
	if err := s.ownedPost(ctx, postID, ownerID); err != nil {
		return err
	}
	if _, err := s.tagRepo.FindByID(ctx, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "tag not found")
		}
		return err
	}
	linked, err := s.tagRepo.LinkExists(ctx, postID, tagID)
	if err != nil {
		return err
	}
	if linked {
		return apperror.New(apperror.ErrConflict, "tag already attached to post")
	}
	return s.tagRepo.Attach(ctx, postID, tagID)
}

func (s *tagService) Detach(ctx context.Context, postID, ownerID, tagID uuid.UUID) error {
	if err := s.ownedPost(ctx, postID, ownerID); err != nil {
		return err
	}
	// Detaching an absent link is a no-op.
	return s.tagRepo.Detach(ctx, postID, tagID)
}

func (s *tagService) Sync(ctx context.Context, postID, ownerID uuid.UUID, tagIDs []uuid.UUID) (*dto.SyncTagsResponse, error) {
	if err := s.ownedPost(ctx, postID, ownerID); err != nil {
		return nil, err
	}

	desired := make(map[uuid.UUID]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		tag, err := s.tagRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.ErrNotFound, "tag not found")
			}
			return nil, err
		}
		desired[tag.ID] = struct{}{}
	}

	currentIDs, err := s.tagRepo.LinkedTagIDs(ctx, postID)
	if err != nil {
		return nil, err
	}
	current := make(map[uuid.UUID]struct{}, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = struct{}{}
	}

	resp := &dto.SyncTagsResponse{
		AddedTags:   []dto.TagView{},
		RemovedTags: []dto.TagView{},
	}
	for id := range desired {
		if _, ok := current[id]; ok {
			continue
		}
		if err := s.tagRepo.Attach(ctx, postID, id); err != nil {
			return nil, err
		}
		tag, err := s.tagRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp.AddedTags = append(resp.AddedTags, toTagView(tag))
	}
	for _, id := range currentIDs {
		if _, ok := desired[id]; ok {
			continue
		}
		tag, err := s.tagRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.tagRepo.Detach(ctx, postID, id); err != nil {
			return nil, err
		}
		resp.RemovedTags = append(resp.RemovedTags, toTagView(tag))
	}
	resp.TotalTags = len(desired)
	return resp, nil
}

func (s *tagService) List(ctx context.Context, page, limit int) (*dto.PaginatedTagsResponse, error) {
	offset := (page - 1) * limit
	rows, total, err := s.tagRepo.ListWithCounts(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	views := make([]dto.TagView, 0, len(rows))
	for i := range rows {
		view := toTagView(&rows[i].Tag)
		count := rows[i].PostsCount
		view.PostsCount = &count
		views = append(views, view)
	}
	return &dto.PaginatedTagsResponse{
		Tags: views,
		Meta: newPaginationMeta(page, limit, total),
	}, nil
}

func (s *tagService) Get(ctx context.Context, id uuid.UUID) (*dto.TagView, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "tag not found")
		}
		return nil, err
	}
	count, err := s.tagRepo.CountPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toTagView(tag)
	view.PostsCount = &count
	return &view, nil
}

func (s *tagService) PostsByTag(ctx context.Context, tagID uuid.UUID, viewerID *uuid.UUID, page, limit int) (*dto.TagPostsResponse, error) {
	tagView, err := s.Get(ctx, tagID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	posts, total, err := s.tagRepo.PostsForTag(ctx, tagID, offset, limit)
	if err != nil {
		return nil, err
	}
	views, err := s.decorator.decorateAll(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	return &dto.TagPostsResponse{
		Tag:   *tagView,
		Posts: views,
		Meta:  newPaginationMeta(page, limit, total),
	}, nil
}

func (s *tagService) TagsForPost(ctx context.Context, postID uuid.UUID) ([]dto.TagView, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}
	tags, err := s.tagRepo.TagsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.TagView, 0, len(tags))
	for i := range tags {
		views = append(views, toTagView(&tags[i]))
	}
	return views, nil
}
