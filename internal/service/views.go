package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
)

// textPolicy strips every HTML element from user-supplied text before it
// is stored. Captions, titles and comments are plain text.
var textPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return textPolicy.Sanitize(s)
}

func newPaginationMeta(page, limit int, total int64) dto.PaginationMeta {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return dto.PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       limit,
	}
}

func toUserPublic(u *entity.User) dto.UserPublic {
	return dto.UserPublic{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Bio:       u.Bio,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func toTagView(t *entity.Tag) dto.TagView {
	return dto.TagView{
		ID:        t.ID,
		TagName:   t.TagName,
		CreatedAt: t.CreatedAt,
	}
}

func toCommentView(c *entity.Comment) dto.CommentView {
	return dto.CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		User:      toUserPublic(&c.User),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// postDecorator turns preloaded post rows into PostViews with the
// per-post aggregates. IsLiked is only attached when a viewer is known.
type postDecorator struct {
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

func (d *postDecorator) decorate(ctx context.Context, post *entity.Post, viewerID *uuid.UUID) (dto.PostView, error) {
	likes, err := d.likeRepo.CountForPost(ctx, post.ID)
	if err != nil {
		return dto.PostView{}, err
	}
	comments, err := d.commentRepo.CountForPost(ctx, post.ID)
	if err != nil {
		return dto.PostView{}, err
	}

	images := make([]string, 0, len(post.Images))
	for _, img := range post.Images {
		images = append(images, img.URL)
	}
	tags := make([]dto.TagView, 0, len(post.Tags))
	for i := range post.Tags {
		tags = append(tags, toTagView(&post.Tags[i]))
	}

	view := dto.PostView{
		ID:            post.ID,
		Title:         post.Title,
		Caption:       post.Caption,
		User:          toUserPublic(&post.User),
		Images:        images,
		Tags:          tags,
		LikesCount:    likes,
		CommentsCount: comments,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}

	if viewerID != nil {
		liked, err := d.likeRepo.Exists(ctx, *viewerID, post.ID)
		if err != nil {
			return dto.PostView{}, err
		}
		view.IsLiked = &liked
	}
	return view, nil
}

func (d *postDecorator) decorateAll(ctx context.Context, posts []entity.Post, viewerID *uuid.UUID) ([]dto.PostView, error) {
	views := make([]dto.PostView, 0, len(posts))
	for i := range posts {
		view, err := d.decorate(ctx, &posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
