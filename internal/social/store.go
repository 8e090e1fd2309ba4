package social

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/spotlog/spotlog/internal/db"
	"github.com/spotlog/spotlog/internal/models"
)

// store is the storage seam every graph mutation goes through. The
// gorm implementation below is the only one in production; tests
// substitute an in-memory fake to drive the edge and cascade rules
// without a database.
type store interface {
	// Transact runs fn against a transaction-scoped store. Any error
	// from fn rolls the whole unit back.
	Transact(ctx context.Context, fn func(store) error) error

	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SetUserBlock(ctx context.Context, id int64, blocked bool, reason string) error
	SoftDeleteUser(ctx context.Context, id int64, at time.Time) error
	HardDeleteUser(ctx context.Context, id int64) error

	GetReview(ctx context.Context, id int64) (*models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) error
	SetReviewBlock(ctx context.Context, id int64, blocked bool, reason string) error
	SoftDeleteReview(ctx context.Context, id int64, at time.Time) error
	SoftDeleteReviewsByAuthor(ctx context.Context, authorID int64, at time.Time) error
	HardDeleteReviewsByAuthor(ctx context.Context, authorID int64) error
	HardDeleteImagesOfAuthorReviews(ctx context.Context, authorID int64) error

	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	UpdateComment(ctx context.Context, comment *models.Comment) error
	SoftDeleteComment(ctx context.Context, id int64, at time.Time) error
	SoftDeleteCommentsByReview(ctx context.Context, reviewID int64, at time.Time) error
	SoftDeleteCommentsByAuthor(ctx context.Context, authorID int64, at time.Time) error
	HardDeleteCommentsByAuthor(ctx context.Context, authorID int64) error
	HardDeleteCommentsOnAuthorReviews(ctx context.Context, authorID int64) error

	HasFollow(ctx context.Context, followerID, followeeID int64) (bool, error)
	CreateFollow(ctx context.Context, edge *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followeeID int64) error
	DeleteFollowsOf(ctx context.Context, userID int64) error

	HasHeart(ctx context.Context, userID, reviewID int64) (bool, error)
	CreateHeart(ctx context.Context, edge *models.Heart) error
	DeleteHeart(ctx context.Context, userID, reviewID int64) error
	DeleteHeartsByUser(ctx context.Context, userID int64) error
	DeleteHeartsByReview(ctx context.Context, reviewID int64) error
	DeleteHeartsOnAuthorReviews(ctx context.Context, authorID int64) error

	HasScrap(ctx context.Context, userID, reviewID int64) (bool, error)
	CreateScrap(ctx context.Context, edge *models.Scrap) error
	DeleteScrap(ctx context.Context, userID, reviewID int64) error
	DeleteScrapsByUser(ctx context.Context, userID int64) error
	DeleteScrapsByReview(ctx context.Context, reviewID int64) error
	DeleteScrapsOnAuthorReviews(ctx context.Context, authorID int64) error
}

// gormStore implements store over the db repositories plus the bulk
// statements the repositories have no reason to expose.
type gormStore struct {
	db *gorm.DB
}

func newGormStore(database *gorm.DB) *gormStore {
	return &gormStore{db: database}
}

func (g *gormStore) repo() *db.Repository {
	return db.NewRepository(g.db)
}

func (g *gormStore) Transact(ctx context.Context, fn func(store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (g *gormStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return db.NewUserRepository(g.repo()).GetByID(ctx, id)
}

func (g *gormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return db.NewUserRepository(g.repo()).GetByUsername(ctx, username)
}

func (g *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	return db.NewUserRepository(g.repo()).Create(ctx, user)
}

func (g *gormStore) SetUserBlock(ctx context.Context, id int64, blocked bool, reason string) error {
	return g.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"blocked":      blocked,
			"block_reason": sql.NullString{String: reason, Valid: blocked},
		}).Error
}

func (g *gormStore) SoftDeleteUser(ctx context.Context, id int64, at time.Time) error {
	return g.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted": true, "deleted_at": at, "active": false}).Error
}

func (g *gormStore) HardDeleteUser(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (g *gormStore) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	return db.NewReviewRepository(g.repo()).GetByID(ctx, id)
}

func (g *gormStore) CreateReview(ctx context.Context, review *models.Review) error {
	return db.NewReviewRepository(g.repo()).Create(ctx, review)
}

func (g *gormStore) SetReviewBlock(ctx context.Context, id int64, blocked bool, reason string) error {
	return g.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"blocked":      blocked,
			"block_reason": sql.NullString{String: reason, Valid: blocked},
		}).Error
}

func (g *gormStore) SoftDeleteReview(ctx context.Context, id int64, at time.Time) error {
	return g.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted": true, "deleted_at": at}).Error
}

func (g *gormStore) SoftDeleteReviewsByAuthor(ctx context.Context, authorID int64, at time.Time) error {
	return g.db.WithContext(ctx).Model(&models.Review{}).
		Where("author_id = ? AND deleted = ?", authorID, false).
		Updates(map[string]interface{}{"deleted": true, "deleted_at": at}).Error
}

func (g *gormStore) HardDeleteReviewsByAuthor(ctx context.Context, authorID int64) error {
	return g.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Delete(&models.Review{}).Error
}

// authorReviewIDs is the subquery selecting every review id authored
// by authorID, used by the purge cascade before the reviews go.
func (g *gormStore) authorReviewIDs(authorID int64) *gorm.DB {
	return g.db.Model(&models.Review{}).Select("id").Where("author_id = ?", authorID)
}

func (g *gormStore) HardDeleteImagesOfAuthorReviews(ctx context.Context, authorID int64) error {
	return g.db.WithContext(ctx).
		Where("review_id IN (?)", g.authorReviewIDs(authorID)).
		Delete(&models.ReviewImage{}).Error
}

func (g *gormStore) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	return db.NewCommentRepository(g.repo()).GetByID(ctx, id)
}

func (g *gormStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return db.NewCommentRepository(g.repo()).Create(ctx, comment)
}

func (g *gormStore) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return db.NewCommentRepository(g.repo()).Update(ctx, comment)
}

func (g *gormStore) SoftDeleteComment(ctx context.Context, id int64, at time.Time) error {
	return g.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted": true, "deleted_at": at}).Error
}

func (g *gormStore) SoftDeleteCommentsByReview(ctx context.Context, reviewID int64, at time.Time) error {
	return g.db.WithContext(ctx).Model(&models.Comment{}).
		Where("review_id = ? AND deleted = ?", reviewID, false).
		Updates(map[string]interface{}{"deleted": true, "deleted_at": at}).Error
}

func (g *gormStore) SoftDeleteCommentsByAuthor(ctx context.Context, authorID int64, at time.Time) error {
	return g.db.WithContext(ctx).Model(&models.Comment{}).
		Where("author_id = ? AND deleted = ?", authorID, false).
		Updates(map[string]interface{}{"deleted": true, "deleted_at": at}).Error
}

func (g *gormStore) HardDeleteCommentsByAuthor(ctx context.Context, authorID int64) error {
	return g.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Delete(&models.Comment{}).Error
}

func (g *gormStore) HardDeleteCommentsOnAuthorReviews(ctx context.Context, authorID int64) error {
	return g.db.WithContext(ctx).
		Where("review_id IN (?)", g.authorReviewIDs(authorID)).
		Delete(&models.Comment{}).Error
}

func (g *gormStore) HasFollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return db.NewFollowRepository(g.repo()).Exists(ctx, followerID, followeeID)
}

func (g *gormStore) CreateFollow(ctx context.Context, edge *models.Follow) error {
	return db.NewFollowRepository(g.repo()).Create(ctx, edge)
}

func (g *gormStore) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	return db.NewFollowRepository(g.repo()).Delete(ctx, followerID, followeeID)
}

func (g *gormStore) DeleteFollowsOf(ctx context.Context, userID int64) error {
	return g.db.WithContext(ctx).
		Where("follower_id = ? OR followee_id = ?", userID, userID).
		Delete(&models.Follow{}).Error
}

func (g *gormStore) HasHeart(ctx context.Context, userID, reviewID int64) (bool, error) {
	return db.NewHeartRepository(g.repo()).Exists(ctx, userID, reviewID)
}

func (g *gormStore) CreateHeart(ctx context.Context, edge *models.Heart) error {
	return db.NewHeartRepository(g.repo()).Create(ctx, edge)
}

func (g *gormStore) DeleteHeart(ctx context.Context, userID, reviewID int64) error {
	return db.NewHeartRepository(g.repo()).Delete(ctx, userID, reviewID)
}

func (g *gormStore) DeleteHeartsByUser(ctx context.Context, userID int64) error {
	return g.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Heart{}).Error
}

func (g *gormStore) DeleteHeartsByReview(ctx context.Context, reviewID int64) error {
	return g.db.WithContext(ctx).Where("review_id = ?", reviewID).Delete(&models.Heart{}).Error
}

func (g *gormStore) DeleteHeartsOnAuthorReviews(ctx context.Context, authorID int64) error {
	return g.db.WithContext(ctx).
		Where("review_id IN (?)", g.authorReviewIDs(authorID)).
		Delete(&models.Heart{}).Error
}

func (g *gormStore) HasScrap(ctx context.Context, userID, reviewID int64) (bool, error) {
	return db.NewScrapRepository(g.repo()).Exists(ctx, userID, reviewID)
}

func (g *gormStore) CreateScrap(ctx context.Context, edge *models.Scrap) error {
	return db.NewScrapRepository(g.repo()).Create(ctx, edge)
}

func (g *gormStore) DeleteScrap(ctx context.Context, userID, reviewID int64) error {
	return db.NewScrapRepository(g.repo()).Delete(ctx, userID, reviewID)
}

func (g *gormStore) DeleteScrapsByUser(ctx context.Context, userID int64) error {
	return g.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Scrap{}).Error
}

func (g *gormStore) DeleteScrapsByReview(ctx context.Context, reviewID int64) error {
	return g.db.WithContext(ctx).Where("review_id = ?", reviewID).Delete(&models.Scrap{}).Error
}

func (g *gormStore) DeleteScrapsOnAuthorReviews(ctx context.Context, authorID int64) error {
	return g.db.WithContext(ctx).
		Where("review_id IN (?)", g.authorReviewIDs(authorID)).
		Delete(&models.Scrap{}).Error
}
