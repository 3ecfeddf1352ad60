package dto

import (
	"time"

	"github.com/wasla-app/wasla-api/internal/entity"
)

type RegisterRequest struct {
	FullName    string  `json:"full_name" binding:"required,max=255"`
	Email       string  `json:"email" binding:"required,email,max=255"`
	Password    string  `json:"password" binding:"required,min=8"`
	PhoneNumber string  `json:"phone_number" binding:"required,max=20"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	BirthDate   string  `json:"birth_date" binding:"required"`
	Gender      string  `json:"gender" binding:"required,oneof=male female"`
	Image       *string `json:"image" binding:"omitempty,url,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	BirthDate   *string `json:"birth_date"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female"`
	Image       *string `json:"image" binding:"omitempty,url,max=500"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UserStats are the aggregate counts shown with the current profile.
type UserStats struct {
	PostsCount     int64 `json:"posts_count"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	LikesCount     int64 `json:"likes_count"`
	CommentsCount  int64 `json:"comments_count"`
}

type MeResponse struct {
	User        *entity.User `json:"user"`
	Stats       UserStats    `json:"stats"`
	LatestPosts []PostView   `json:"latest_posts"`
}
