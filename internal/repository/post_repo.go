package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	// FindByIDForOwner scopes the lookup to the owner so missing and
	// not-owned posts are indistinguishable to the caller.
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error)
	FindAll(ctx context.Context, offset, limit int) ([]entity.Post, int64, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.Post, int64, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Post, error)
	FindTopLiked(ctx context.Context, limit int) ([]entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	ReplaceImages(ctx context.Context, postID uuid.UUID, images []entity.PostImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Search(ctx context.Context, keyword string, limit int) ([]entity.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func withPostPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := withPostPreloads(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := withPostPreloads(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAll(ctx context.Context, offset, limit int) ([]entity.Post, int64, error) {
	var posts []entity.Post
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := withPostPreloads(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) FindAllByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.Post, int64, error) {
	var posts []entity.Post
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := withPostPreloads(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := withPostPreloads(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) FindTopLiked(ctx context.Context, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := withPostPreloads(r.db.WithContext(ctx)).
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Group("posts.id").
		Order("COUNT(likes.id) DESC, posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).
		Omit("Images", "Tags", "User").
		Save(post).Error
}

// ReplaceImages swaps the full image list, re-packing positions from 0.
func (r *postRepository) ReplaceImages(ctx context.Context, postID uuid.UUID, images []entity.PostImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&entity.PostImage{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ID = 0
			images[i].PostID = postID
			images[i].Position = i
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Post{}).Error
}

func (r *postRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) Search(ctx context.Context, keyword string, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	pattern := "%" + keyword + "%"
	err := withPostPreloads(r.db.WithContext(ctx)).
		Where("title ILIKE ? OR caption ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
