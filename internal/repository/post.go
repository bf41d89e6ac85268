package repository

import (
	"context"
	"errors"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// feedOrder is the ordering contract shared by every feed: newest creation
// timestamp first, identity as the tiebreak so equal timestamps still sort
// deterministically by insertion order.
const feedOrder = "created_at DESC, id DESC"

// PostRepository defines the interface for post data operations.
// The List/Count pairs back the four feed kinds (global, group, profile,
// following); all listings preload author and group to avoid per-row lookups.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	CountAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, error)
	CountByAuthor(ctx context.Context, userID uint) (int64, error)
	ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
	ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Group").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// Update persists edits to text, group and image. CreatedAt is immutable after
// insert, so only the mutable columns are written.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Where("group_id = ?", groupID).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Where("user_id = ?", userID).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.user_id").
		Where("follows.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.feedQuery(ctx).
		Joins("JOIN follows ON follows.author_id = posts.user_id").
		Where("follows.user_id = ?", userID).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// feedQuery applies the shared feed ordering and eager-loads author and group.
func (r *postRepository) feedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Preload("User").
		Preload("Group").
		Order(feedOrder)
}
