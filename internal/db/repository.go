package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spotlog/spotlog/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying gorm handle for query builders
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username (case-sensitive)
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ReviewRepository provides review-related database operations
type ReviewRepository struct {
	*Repository
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(repo *Repository) *ReviewRepository {
	return &ReviewRepository{Repository: repo}
}

// GetByID retrieves a review by ID with its ordered images
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_images.position ASC")
		}).
		First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Create creates a new review with its images
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// Update updates a review
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Update updates a comment
func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// HeartRepository provides heart-edge database operations
type HeartRepository struct {
	*Repository
}

// NewHeartRepository creates a new heart repository
func NewHeartRepository(repo *Repository) *HeartRepository {
	return &HeartRepository{Repository: repo}
}

// Exists reports whether the (user, review) heart edge exists
func (r *HeartRepository) Exists(ctx context.Context, userID, reviewID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Heart{}).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a heart edge
func (r *HeartRepository) Create(ctx context.Context, heart *models.Heart) error {
	return r.db.WithContext(ctx).Create(heart).Error
}

// Delete removes a heart edge; removing a missing edge is not an error
func (r *HeartRepository) Delete(ctx context.Context, userID, reviewID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&models.Heart{}).Error
}

// ScrapRepository provides scrap-edge database operations
type ScrapRepository struct {
	*Repository
}

// NewScrapRepository creates a new scrap repository
func NewScrapRepository(repo *Repository) *ScrapRepository {
	return &ScrapRepository{Repository: repo}
}

// Exists reports whether the (user, review) scrap edge exists
func (r *ScrapRepository) Exists(ctx context.Context, userID, reviewID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Scrap{}).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a scrap edge
func (r *ScrapRepository) Create(ctx context.Context, scrap *models.Scrap) error {
	return r.db.WithContext(ctx).Create(scrap).Error
}

// Delete removes a scrap edge; removing a missing edge is not an error
func (r *ScrapRepository) Delete(ctx context.Context, userID, reviewID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&models.Scrap{}).Error
}

// ListByUser retrieves a page of a user's scraps, newest first,
// probing one row past the page size
func (r *ScrapRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*models.Scrap, error) {
	var scraps []*models.Scrap
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, review_id DESC").
		Offset(offset).Limit(limit).
		Find(&scraps).Error; err != nil {
		return nil, err
	}
	return scraps, nil
}

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// Exists reports whether the directed (follower, followee) edge exists
func (r *FollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a follow edge
func (r *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

// Delete removes a follow edge; removing a missing edge is not an error
func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}
