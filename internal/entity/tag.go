package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxTagNameLen is the normalized length cap for extracted hashtags.
const MaxTagNameLen = 50

// Tag names are stored normalized: trimmed, lower-cased, truncated to
// MaxTagNameLen. The unique index is the get-or-create anchor.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TagName   string    `gorm:"size:50;uniqueIndex;not null" json:"tag_name"`
	Posts     []Post    `gorm:"many2many:post_tags;" json:"posts,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}

// PostTag is the join row between posts and tags. It carries its own
// timestamps and forbids duplicate links per (post, tag).
type PostTag struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"post_id"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"tag_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
