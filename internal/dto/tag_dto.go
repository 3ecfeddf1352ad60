package dto

import "github.com/google/uuid"

type AttachTagRequest struct {
	TagID uuid.UUID `json:"tag_id" binding:"required"`
}

type SyncTagsRequest struct {
	TagIDs []uuid.UUID `json:"tag_ids" binding:"required"`
}

// SyncTagsResponse reports the diff a sync produced rather than the full
// resulting set, so callers can surface "added X, removed Y" directly.
type SyncTagsResponse struct {
	AddedTags   []TagView `json:"added_tags"`
	RemovedTags []TagView `json:"removed_tags"`
	TotalTags   int       `json:"total_tags"`
}

type PaginatedTagsResponse struct {
	Tags []TagView      `json:"tags"`
	Meta PaginationMeta `json:"meta"`
}

type TagPostsResponse struct {
	Tag   TagView        `json:"tag"`
	Posts []PostView     `json:"posts"`
	Meta  PaginationMeta `json:"meta"`
}
