package social

import (
	"context"

	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
	"github.com/spotlog/spotlog/internal/visibility"
)

// BlockUser marks a user blocked with a reason. Moderator-only; the
// block is reversible and the content stays in storage for audit.
func (s *Service) BlockUser(ctx context.Context, caller visibility.Caller, userID int64, reason string) error {
	if !caller.IsModerator() {
		return errs.AccessDenied("moderator role required")
	}
	if reason == "" {
		return errs.InvalidRequest("a block reason is required")
	}

	return s.setUserBlock(ctx, userID, true, reason)
}

// UnblockUser clears a user's block state. Moderator-only.
func (s *Service) UnblockUser(ctx context.Context, caller visibility.Caller, userID int64) error {
	if !caller.IsModerator() {
		return errs.AccessDenied("moderator role required")
	}
	return s.setUserBlock(ctx, userID, false, "")
}

func (s *Service) setUserBlock(ctx context.Context, userID int64, blocked bool, reason string) error {
	return s.store.Transact(ctx, func(st store) error {
		user, err := st.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil || user.Deleted {
			return errs.NotFound("user %d not found", userID)
		}

		return st.SetUserBlock(ctx, userID, blocked, reason)
	})
}

// BlockReview marks a review blocked with a reason. Moderator-only.
func (s *Service) BlockReview(ctx context.Context, caller visibility.Caller, reviewID int64, reason string) error {
	if !caller.IsModerator() {
		return errs.AccessDenied("moderator role required")
	}
	if reason == "" {
		return errs.InvalidRequest("a block reason is required")
	}
	return s.setReviewBlock(ctx, reviewID, true, reason)
}

// UnblockReview clears a review's block state. Moderator-only.
func (s *Service) UnblockReview(ctx context.Context, caller visibility.Caller, reviewID int64) error {
	if !caller.IsModerator() {
		return errs.AccessDenied("moderator role required")
	}
	return s.setReviewBlock(ctx, reviewID, false, "")
}

func (s *Service) setReviewBlock(ctx context.Context, reviewID int64, blocked bool, reason string) error {
	return s.store.Transact(ctx, func(st store) error {
		review, err := st.GetReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if review == nil || review.Deleted {
			return errs.NotFound("review %d not found", reviewID)
		}

		return st.SetReviewBlock(ctx, reviewID, blocked, reason)
	})
}

// PurgeUser hard-deletes a user and every dependent row: reviews and
// their images, comments, hearts, scraps, and follow edges in both
// directions. Admin-only; this is the one path that leaves nothing
// behind.
func (s *Service) PurgeUser(ctx context.Context, caller visibility.Caller, userID int64) error {
	if caller.Role != models.RoleAdmin {
		return errs.AccessDenied("admin role required")
	}

	return s.store.Transact(ctx, func(st store) error {
		user, err := st.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errs.NotFound("user %d not found", userID)
		}

		// Rows referencing the user's reviews go first, while the
		// review ids are still there to select on.
		if err := st.DeleteHeartsOnAuthorReviews(ctx, userID); err != nil {
			return err
		}
		if err := st.DeleteScrapsOnAuthorReviews(ctx, userID); err != nil {
			return err
		}
		if err := st.HardDeleteCommentsOnAuthorReviews(ctx, userID); err != nil {
			return err
		}
		if err := st.HardDeleteImagesOfAuthorReviews(ctx, userID); err != nil {
			return err
		}

		if err := st.DeleteHeartsByUser(ctx, userID); err != nil {
			return err
		}
		if err := st.DeleteScrapsByUser(ctx, userID); err != nil {
			return err
		}
		if err := st.HardDeleteCommentsByAuthor(ctx, userID); err != nil {
			return err
		}
		if err := st.DeleteFollowsOf(ctx, userID); err != nil {
			return err
		}
		if err := st.HardDeleteReviewsByAuthor(ctx, userID); err != nil {
			return err
		}

		if err := st.HardDeleteUser(ctx, userID); err != nil {
			return err
		}

		s.logger.Info("User purged", zap.Int64("user_id", userID), zap.Int64("admin_id", caller.ID))
		return nil
	})
}
