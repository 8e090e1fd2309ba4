package social

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
	"github.com/spotlog/spotlog/internal/visibility"
)

// validateFollowPair rejects self-follows before any storage access
func validateFollowPair(followerID, followeeID int64) error {
	if followerID == followeeID {
		return errs.InvalidRequest("cannot follow yourself")
	}
	return nil
}

// validateReactionTarget applies the edge-creation policy for hearts
// and scraps: the review must exist and be visible to the caller, and
// must not be the caller's own.
func validateReactionTarget(caller visibility.Caller, review *models.Review) error {
	if review == nil || review.Deleted {
		return errs.NotFound("review not found")
	}
	if review.AuthorID == caller.ID {
		return errs.InvalidRequest("cannot react to your own review")
	}
	if review.Blocked && !caller.IsModerator() {
		return errs.NotAllowed("review %d is blocked", review.ID)
	}
	return nil
}

// Follow creates the directed follow edge. A second identical call
// fails with Conflict; the composite primary key backstops the
// pre-check against concurrent duplicates.
func (s *Service) Follow(ctx context.Context, caller visibility.Caller, followeeID int64) error {
	if err := validateFollowPair(caller.ID, followeeID); err != nil {
		return err
	}

	return s.store.Transact(ctx, func(st store) error {
		followee, err := st.GetUser(ctx, followeeID)
		if err != nil {
			return err
		}
		if followee == nil || followee.Deleted {
			return errs.NotFound("user %d not found", followeeID)
		}

		exists, err := st.HasFollow(ctx, caller.ID, followeeID)
		if err != nil {
			return err
		}
		if exists {
			return errs.Conflict("already following user %d", followeeID)
		}

		edge := &models.Follow{FollowerID: caller.ID, FolloweeID: followeeID, CreatedAt: time.Now().UTC()}
		if err := st.CreateFollow(ctx, edge); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("already following user %d", followeeID)
			}
			return err
		}

		s.logger.Debug("Follow edge created",
			zap.Int64("follower_id", caller.ID), zap.Int64("followee_id", followeeID))
		return nil
	})
}

// Unfollow removes the follow edge. Removing a missing edge succeeds:
// unfollow is idempotent, never an error.
func (s *Service) Unfollow(ctx context.Context, caller visibility.Caller, followeeID int64) error {
	return s.store.DeleteFollow(ctx, caller.ID, followeeID)
}

// Heart creates a like edge on a review
func (s *Service) Heart(ctx context.Context, caller visibility.Caller, reviewID int64) error {
	return s.store.Transact(ctx, func(st store) error {
		review, err := st.GetReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if err := validateReactionTarget(caller, review); err != nil {
			return err
		}

		exists, err := st.HasHeart(ctx, caller.ID, reviewID)
		if err != nil {
			return err
		}
		if exists {
			return errs.Conflict("review %d already hearted", reviewID)
		}

		edge := &models.Heart{UserID: caller.ID, ReviewID: reviewID, CreatedAt: time.Now().UTC()}
		if err := st.CreateHeart(ctx, edge); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("review %d already hearted", reviewID)
			}
			return err
		}
		return nil
	})
}

// Unheart removes a like edge, idempotently
func (s *Service) Unheart(ctx context.Context, caller visibility.Caller, reviewID int64) error {
	return s.store.DeleteHeart(ctx, caller.ID, reviewID)
}

// Scrap creates a bookmark edge on a review with a note
func (s *Service) Scrap(ctx context.Context, caller visibility.Caller, reviewID int64, description string) error {
	if len(description) > 255 {
		return errs.InvalidRequest("description must be at most 255 characters")
	}

	return s.store.Transact(ctx, func(st store) error {
		review, err := st.GetReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if err := validateReactionTarget(caller, review); err != nil {
			return err
		}

		exists, err := st.HasScrap(ctx, caller.ID, reviewID)
		if err != nil {
			return err
		}
		if exists {
			return errs.Conflict("review %d already scraped", reviewID)
		}

		edge := &models.Scrap{
			UserID:      caller.ID,
			ReviewID:    reviewID,
			Description: description,
			CreatedAt:   time.Now().UTC(),
		}
		if err := st.CreateScrap(ctx, edge); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("review %d already scraped", reviewID)
			}
			return err
		}
		return nil
	})
}

// Unscrap removes a bookmark edge, idempotently
func (s *Service) Unscrap(ctx context.Context, caller visibility.Caller, reviewID int64) error {
	return s.store.DeleteScrap(ctx, caller.ID, reviewID)
}
