package counters

import (
	"context"

	"gorm.io/gorm"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
)

// Kind selects which relation a count is taken over
type Kind string

// Count kinds
const (
	KindFollowers      Kind = "followers"
	KindFollowing      Kind = "following"
	KindReviewHearts   Kind = "review_hearts"
	KindReviewScraps   Kind = "review_scraps"
	KindReviewComments Kind = "review_comments"
)

// Counters computes denormalized counts from the live relation tables.
// Counts feed both sort order and display, so they are never read from
// a cached column: the write paths do not maintain one, and a stale
// counter would disagree with the ordering the same request returns.
type Counters struct {
	db *gorm.DB
}

// New creates a new counter source
func New(db *gorm.DB) *Counters {
	return &Counters{db: db}
}

// Count returns the live count of the given kind for the owning entity
func (c *Counters) Count(ctx context.Context, kind Kind, ownerID int64) (int64, error) {
	var count int64
	var err error

	switch kind {
	case KindFollowers:
		err = c.db.WithContext(ctx).Model(&models.Follow{}).
			Where("followee_id = ?", ownerID).Count(&count).Error
	case KindFollowing:
		err = c.db.WithContext(ctx).Model(&models.Follow{}).
			Where("follower_id = ?", ownerID).Count(&count).Error
	case KindReviewHearts:
		err = c.db.WithContext(ctx).Model(&models.Heart{}).
			Where("review_id = ?", ownerID).Count(&count).Error
	case KindReviewScraps:
		err = c.db.WithContext(ctx).Model(&models.Scrap{}).
			Where("review_id = ?", ownerID).Count(&count).Error
	case KindReviewComments:
		// Deleted comments render as placeholders but do not count
		err = c.db.WithContext(ctx).Model(&models.Comment{}).
			Where("review_id = ? AND deleted = ?", ownerID, false).Count(&count).Error
	default:
		return 0, errs.InvalidRequest("unknown count kind: %s", kind)
	}

	if err != nil {
		return 0, err
	}
	return count, nil
}

// UserCounts holds the social counts displayed on a user view
type UserCounts struct {
	Followers int64
	Following int64
}

// ForUser returns the follower and following counts for a user
func (c *Counters) ForUser(ctx context.Context, userID int64) (*UserCounts, error) {
	followers, err := c.Count(ctx, KindFollowers, userID)
	if err != nil {
		return nil, err
	}
	following, err := c.Count(ctx, KindFollowing, userID)
	if err != nil {
		return nil, err
	}
	return &UserCounts{Followers: followers, Following: following}, nil
}

// ReviewCounts holds the reaction counts displayed on a review view
type ReviewCounts struct {
	Hearts   int64
	Scraps   int64
	Comments int64
}

// ForReview returns the heart, scrap and comment counts for a review
func (c *Counters) ForReview(ctx context.Context, reviewID int64) (*ReviewCounts, error) {
	hearts, err := c.Count(ctx, KindReviewHearts, reviewID)
	if err != nil {
		return nil, err
	}
	scraps, err := c.Count(ctx, KindReviewScraps, reviewID)
	if err != nil {
		return nil, err
	}
	comments, err := c.Count(ctx, KindReviewComments, reviewID)
	if err != nil {
		return nil, err
	}
	return &ReviewCounts{Hearts: hearts, Scraps: scraps, Comments: comments}, nil
}
