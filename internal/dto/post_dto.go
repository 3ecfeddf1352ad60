package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required,max=255"`
	Caption string   `json:"caption" binding:"required"`
	Images  []string `json:"images" binding:"omitempty,max=4,dive,url,max=500"`
}

type UpdatePostRequest struct {
	Title   *string  `json:"title" binding:"omitempty,max=255"`
	Caption *string  `json:"caption"`
	Images  []string `json:"images" binding:"omitempty,max=4,dive,url,max=500"`
}

type AddImagesRequest struct {
	Images []string `json:"images" binding:"required,min=1,max=4,dive,url,max=500"`
}

type RemoveImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

type AddImagesResponse struct {
	Post        PostView `json:"post"`
	AddedCount  int      `json:"added_count"`
	TotalImages int      `json:"total_images"`
}

type PaginatedPostsResponse struct {
	Posts []PostView     `json:"posts"`
	Meta  PaginationMeta `json:"meta"`
}

// UserPostsResponse carries the profile header alongside the page of
// that user's posts.
type UserPostsResponse struct {
	User  UserPublic     `json:"user"`
	Posts []PostView     `json:"posts"`
	Meta  PaginationMeta `json:"meta"`
}

type ToggleLikeRequest struct {
	PostID uuid.UUID `json:"post_id" binding:"required"`
}

type ToggleLikeResponse struct {
	Action     string    `json:"action"`
	PostID     uuid.UUID `json:"post_id"`
	LikesCount int64     `json:"likes_count"`
}

type LikeCheckResponse struct {
	IsLiked bool      `json:"is_liked"`
	PostID  uuid.UUID `json:"post_id"`
	UserID  uuid.UUID `json:"user_id"`
}

type PostLikesResponse struct {
	PostID     uuid.UUID      `json:"post_id"`
	Likers     []UserPublic   `json:"likers"`
	TotalLikes int64          `json:"total_likes"`
	Meta       PaginationMeta `json:"meta"`
}

type CreateCommentRequest struct {
	PostID uuid.UUID `json:"post_id" binding:"required"`
	Text   string    `json:"comment_text" binding:"required,max=1000"`
}

type UpdateCommentRequest struct {
	Text string `json:"comment_text" binding:"required,max=1000"`
}

type PaginatedCommentsResponse struct {
	Comments []CommentView  `json:"comments"`
	Meta     PaginationMeta `json:"meta"`
}
