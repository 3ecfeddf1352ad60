package dto

import (
	"time"

	"github.com/google/uuid"
)

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

// UserPublic is the profile shape exposed to other users.
type UserPublic struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	ImageURL   *string   `json:"image,omitempty"`
	IsFollowed *bool     `json:"is_followed,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type TagView struct {
	ID         uuid.UUID `json:"id"`
	TagName    string    `json:"tag_name"`
	PostsCount *int64    `json:"posts_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostView is a post decorated with aggregates; IsLiked is only present
// for authenticated callers.
type PostView struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Caption       string     `json:"caption"`
	User          UserPublic `json:"user"`
	Images        []string   `json:"images"`
	Tags          []TagView  `json:"tags"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	IsLiked       *bool      `json:"is_liked,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CommentView struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	User      UserPublic `json:"user"`
	Text      string     `json:"comment_text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
