package dto

import (
	"time"

	"github.com/google/uuid"
)

type FollowRequest struct {
	FollowingID uuid.UUID `json:"following_id" binding:"required"`
}

// FollowEdgeView is one follow edge joined with the counterpart's public
// profile: the follower when listing followers, the followee when listing
// who a user follows.
type FollowEdgeView struct {
	ID        uuid.UUID  `json:"id"`
	User      UserPublic `json:"user"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type FollowListResponse struct {
	Count int64            `json:"count"`
	Edges []FollowEdgeView `json:"data"`
}

type SuggestedUsersResponse struct {
	Count int64        `json:"count"`
	Users []UserPublic `json:"data"`
}
