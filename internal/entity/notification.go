package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeLike   = "like"
	NotificationTypeFollow = "follow"
	// NotificationTypeMention is the type used for new-post fan-out to
	// followers. The name is historical; the meaning is "new post from
	// someone you follow".
	NotificationTypeMention = "mention"
)

// Notification is owned by its recipient. Post and comment references are
// weak back-references without foreign keys: they may dangle once the
// referent is deleted, and readers must tolerate that.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorID   uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`
	Actor     *User      `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"actor,omitempty"`
	Type      string     `gorm:"size:20;not null" json:"type"`
	PostID    *uuid.UUID `gorm:"type:uuid" json:"post_id,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid" json:"comment_id,omitempty"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
