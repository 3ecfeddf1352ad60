package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationView struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Actor     UserPublic `json:"actor"`
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	CommentID *uuid.UUID `json:"comment_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

type PaginatedNotificationsResponse struct {
	Notifications []NotificationView `json:"notifications"`
	UnreadCount   int64              `json:"unread_count"`
	Meta          PaginationMeta     `json:"meta"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
