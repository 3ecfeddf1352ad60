package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wasla-app/wasla-api/internal/entity"
)

// TagWithCount pairs a tag with how many posts currently link to it.
type TagWithCount struct {
	entity.Tag
	PostsCount int64 `json:"posts_count"`
}

type TagRepository interface {
	// GetOrCreate inserts the normalized name or returns the existing row.
	// Concurrent creations of the same name are resolved by the unique
	// index: the losing insert is a no-op and the winner's row is fetched.
	GetOrCreate(ctx context.Context, name string) (*entity.Tag, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)
	ListWithCounts(ctx context.Context, offset, limit int) ([]TagWithCount, int64, error)
	CountPosts(ctx context.Context, tagID uuid.UUID) (int64, error)
	Search(ctx context.Context, keyword string, limit int) ([]entity.Tag, error)

	LinkExists(ctx context.Context, postID, tagID uuid.UUID) (bool, error)
	Attach(ctx context.Context, postID, tagID uuid.UUID) error
	Detach(ctx context.Context, postID, tagID uuid.UUID) error
	DetachAll(ctx context.Context, postID uuid.UUID) error
	LinkedTagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	TagsForPost(ctx context.Context, postID uuid.UUID) ([]entity.Tag, error)
	PostsForTag(ctx context.Context, tagID uuid.UUID, offset, limit int) ([]entity.Post, int64, error)
	SearchPostsByTagName(ctx context.Context, keyword string, limit int) ([]entity.Post, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*entity.Tag, error) {
	tag := entity.Tag{TagName: name}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag_name"}},
			DoNothing: true,
		}).
		Create(&tag)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Lost the race or the tag already existed; fetch the stored row.
		var existing entity.Tag
		if err := r.db.WithContext(ctx).
			Where("tag_name = ?", name).
			First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	return &tag, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) ListWithCounts(ctx context.Context, offset, limit int) ([]TagWithCount, int64, error) {
	var tags []TagWithCount
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).Model(&entity.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS posts_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&tags).Error
	return tags, total, err
}

func (r *tagRepository) CountPosts(ctx context.Context, tagID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PostTag{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}

func (r *tagRepository) Search(ctx context.Context, keyword string, limit int) ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.WithContext(ctx).
		Where("tag_name ILIKE ?", "%"+keyword+"%").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) LinkExists(ctx context.Context, postID, tagID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PostTag{}).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Count(&count).Error
	return count > 0, err
}

func (r *tagRepository) Attach(ctx context.Context, postID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.PostTag{PostID: postID, TagID: tagID}).Error
}

func (r *tagRepository) Detach(ctx context.Context, postID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Delete(&entity.PostTag{}).Error
}

func (r *tagRepository) DetachAll(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&entity.PostTag{}).Error
}

func (r *tagRepository) LinkedTagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.PostTag{}).
		Where("post_id = ?", postID).
		Pluck("tag_id", &ids).Error
	return ids, err
}

func (r *tagRepository) TagsForPost(ctx context.Context, postID uuid.UUID) ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) PostsForTag(ctx context.Context, tagID uuid.UUID, offset, limit int) ([]entity.Post, int64, error) {
	var posts []entity.Post
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.PostTag{}).
		Where("tag_id = ?", tagID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := withPostPreloads(r.db.WithContext(ctx)).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *tagRepository) SearchPostsByTagName(ctx context.Context, keyword string, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := withPostPreloads(r.db.WithContext(ctx)).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.tag_name ILIKE ?", "%"+keyword+"%").
		Distinct().
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
