package ranking

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
)

// SearchField names the text attribute a keyword filter matches against
type SearchField string

// Search fields
const (
	SearchUsername SearchField = "username"
	SearchContent  SearchField = "content"
	SearchLocation SearchField = "location"
)

// Query describes one page request. Page is zero-based; Size is the
// requested slice length, already clamped by the caller.
type Query struct {
	Page      int
	Size      int
	Sort      SortKey
	Ascending bool
	Keyword   string
	SearchBy  SearchField
}

// Engine builds deterministic, sorted, offset-paginated slices over the
// user and review collections. Rows keep their blocked/deleted state;
// exclusion versus masking is the visibility policy's decision, because
// lists mask in place while a direct fetch by id may 404.
type Engine struct {
	db *gorm.DB
}

// NewEngine creates a new ranking engine
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// validate rejects malformed pagination shape before any query executes
func (q *Query) validate(kind EntityKind) (string, error) {
	if q.Page < 0 {
		return "", errs.InvalidRequest("page must not be negative")
	}
	if q.Size < 1 {
		return "", errs.InvalidRequest("size must be positive")
	}
	sort := q.Sort
	if sort == "" {
		sort = SortCreatedAt
	}
	return orderClause(kind, sort, q.Ascending)
}

// PageUsers returns one page of users plus a has-next flag
func (e *Engine) PageUsers(ctx context.Context, q Query) ([]*models.User, bool, error) {
	order, err := q.validate(KindUsers)
	if err != nil {
		return nil, false, err
	}

	query := e.db.WithContext(ctx).Model(&models.User{})
	if q.Keyword != "" {
		query = query.Where("users.username ILIKE ?", likePattern(q.Keyword))
	}

	// Fetch one row past the page to learn whether a next page exists
	// without a separate COUNT query.
	var users []*models.User
	if err := query.
		Order(order).
		Offset(q.Page * q.Size).
		Limit(q.Size + 1).
		Find(&users).Error; err != nil {
		return nil, false, err
	}

	users, hasNext := trimUsers(users, q.Size)
	return users, hasNext, nil
}

// PageReviews returns one page of reviews plus a has-next flag
func (e *Engine) PageReviews(ctx context.Context, q Query) ([]*models.Review, bool, error) {
	order, err := q.validate(KindReviews)
	if err != nil {
		return nil, false, err
	}

	query := e.db.WithContext(ctx).Model(&models.Review{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_images.position ASC")
		})

	if q.Keyword != "" {
		switch q.SearchBy {
		case SearchLocation:
			query = query.Where("reviews.location ILIKE ?", likePattern(q.Keyword))
		case SearchContent, "":
			query = query.Where("reviews.content ILIKE ?", likePattern(q.Keyword))
		default:
			return nil, false, errs.InvalidRequest("invalid search field for reviews: %s", q.SearchBy)
		}
	}

	var reviews []*models.Review
	if err := query.
		Order(order).
		Offset(q.Page * q.Size).
		Limit(q.Size + 1).
		Find(&reviews).Error; err != nil {
		return nil, false, err
	}

	reviews, hasNext := trimReviews(reviews, q.Size)
	return reviews, hasNext, nil
}

// PageFollowers returns one page of the accounts following userID,
// newest edge first
func (e *Engine) PageFollowers(ctx context.Context, userID int64, q Query) ([]*models.User, bool, error) {
	if q.Page < 0 || q.Size < 1 {
		return nil, false, errs.InvalidRequest("malformed pagination parameters")
	}

	var users []*models.User
	if err := e.db.WithContext(ctx).Model(&models.User{}).
		Joins("INNER JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC, users.id DESC").
		Offset(q.Page * q.Size).
		Limit(q.Size + 1).
		Find(&users).Error; err != nil {
		return nil, false, err
	}

	users, hasNext := trimUsers(users, q.Size)
	return users, hasNext, nil
}

// PageFollowing returns one page of the accounts userID follows,
// newest edge first
func (e *Engine) PageFollowing(ctx context.Context, userID int64, q Query) ([]*models.User, bool, error) {
	if q.Page < 0 || q.Size < 1 {
		return nil, false, errs.InvalidRequest("malformed pagination parameters")
	}

	var users []*models.User
	if err := e.db.WithContext(ctx).Model(&models.User{}).
		Joins("INNER JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC, users.id DESC").
		Offset(q.Page * q.Size).
		Limit(q.Size + 1).
		Find(&users).Error; err != nil {
		return nil, false, err
	}

	users, hasNext := trimUsers(users, q.Size)
	return users, hasNext, nil
}

// PageComments returns one page of a review's comments, oldest first
func (e *Engine) PageComments(ctx context.Context, reviewID int64, q Query) ([]*models.Comment, bool, error) {
	if q.Page < 0 || q.Size < 1 {
		return nil, false, errs.InvalidRequest("malformed pagination parameters")
	}

	var comments []*models.Comment
	if err := e.db.WithContext(ctx).Model(&models.Comment{}).
		Where("comments.review_id = ?", reviewID).
		Order("comments.created_at ASC, comments.id ASC").
		Offset(q.Page * q.Size).
		Limit(q.Size + 1).
		Find(&comments).Error; err != nil {
		return nil, false, err
	}

	hasNext := len(comments) > q.Size
	if hasNext {
		comments = comments[:q.Size]
	}
	return comments, hasNext, nil
}

func trimUsers(users []*models.User, size int) ([]*models.User, bool) {
	if len(users) > size {
		return users[:size], true
	}
	return users, false
}

func trimReviews(reviews []*models.Review, size int) ([]*models.Review, bool) {
	if len(reviews) > size {
		return reviews[:size], true
	}
	return reviews, false
}

// likePattern wraps a keyword for a case-insensitive substring match,
// escaping LIKE metacharacters so user input cannot widen the match
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(keyword)
	return "%" + escaped + "%"
}
