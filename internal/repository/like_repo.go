package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wasla-app/wasla-api/internal/entity"
)

const (
	LikeAdded   = "added"
	LikeRemoved = "removed"
)

type LikeRepository interface {
	// Toggle atomically flips the like state for (userID, postID) and
	// reports which way it went. Concurrent toggles on the same pair are
	// serialized by the row lock; the composite unique index backstops
	// the insert path.
	Toggle(ctx context.Context, userID, postID uuid.UUID) (string, error)
	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CountForPost(ctx context.Context, postID uuid.UUID) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ListForPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]entity.Like, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, userID, postID uuid.UUID) (string, error) {
	var action string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Find with a slice avoids GORM's record-not-found log noise.
		var existing []entity.Like
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			action = LikeRemoved
			return tx.Delete(&existing[0]).Error
		}

		action = LikeAdded
		return tx.Create(&entity.Like{UserID: userID, PostID: postID}).Error
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Like{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) ListForPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]entity.Like, int64, error) {
	var likes []entity.Like
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Like{}).
		Where("post_id = ?", postID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&likes).Error
	return likes, total, err
}

func (r *likeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Like, error) {
	var likes []entity.Like
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.User").
		Preload("Post.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}
