package social

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
	"github.com/spotlog/spotlog/internal/visibility"
)

// ReviewInput carries the caller-supplied fields of a new review
type ReviewInput struct {
	Content  string
	Rating   int16
	Location string
	Images   []string
}

func validateReviewInput(in ReviewInput) error {
	if strings.TrimSpace(in.Content) == "" {
		return errs.InvalidRequest("content is required")
	}
	if in.Rating < models.RatingMin || in.Rating > models.RatingMax {
		return errs.InvalidRequest("rating must be between %d and %d", models.RatingMin, models.RatingMax)
	}
	if len(in.Images) < models.ImagesMin || len(in.Images) > models.ImagesMax {
		return errs.InvalidRequest("a review carries between %d and %d images", models.ImagesMin, models.ImagesMax)
	}
	return nil
}

// CreateReview creates a review with its ordered images
func (s *Service) CreateReview(ctx context.Context, caller visibility.Caller, in ReviewInput) (*models.Review, error) {
	if caller.IsAnonymous() {
		return nil, errs.AccessDenied("sign in to post a review")
	}
	if err := validateReviewInput(in); err != nil {
		return nil, err
	}

	images := make([]models.ReviewImage, 0, len(in.Images))
	for i, url := range in.Images {
		images = append(images, models.ReviewImage{Position: int16(i + 1), URL: url})
	}

	review := &models.Review{
		AuthorID:  caller.ID,
		Content:   in.Content,
		Rating:    in.Rating,
		Location:  in.Location,
		CreatedAt: time.Now().UTC(),
		Images:    images,
	}

	err := s.store.Transact(ctx, func(st store) error {
		return st.CreateReview(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Review created", zap.Int64("review_id", review.ID), zap.Int64("author_id", caller.ID))
	return review, nil
}

// DeleteReview soft-deletes a review and cascades over its dependents:
// hearts and scraps are removed outright, comments are soft-deleted.
// Only the author or a moderator may delete.
func (s *Service) DeleteReview(ctx context.Context, caller visibility.Caller, reviewID int64) error {
	return s.store.Transact(ctx, func(st store) error {
		review, err := st.GetReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if review == nil || review.Deleted {
			return errs.NotFound("review %d not found", reviewID)
		}
		if review.AuthorID != caller.ID && !caller.IsModerator() {
			return errs.AccessDenied("only the author may delete this review")
		}

		now := time.Now().UTC()

		if err := st.DeleteHeartsByReview(ctx, reviewID); err != nil {
			return err
		}
		if err := st.DeleteScrapsByReview(ctx, reviewID); err != nil {
			return err
		}
		if err := st.SoftDeleteCommentsByReview(ctx, reviewID, now); err != nil {
			return err
		}

		// Images stay with the soft-deleted row for moderation audit;
		// the visibility policy never surfaces them.
		return st.SoftDeleteReview(ctx, reviewID, now)
	})
}

// CreateComment adds a comment to a visible review
func (s *Service) CreateComment(ctx context.Context, caller visibility.Caller, reviewID int64, content string) (*models.Comment, error) {
	if caller.IsAnonymous() {
		return nil, errs.AccessDenied("sign in to comment")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errs.InvalidRequest("content is required")
	}

	comment := &models.Comment{
		AuthorID:  caller.ID,
		ReviewID:  reviewID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	err := s.store.Transact(ctx, func(st store) error {
		review, err := st.GetReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if review == nil || review.Deleted {
			return errs.NotFound("review %d not found", reviewID)
		}
		if review.Blocked && review.AuthorID != caller.ID && !caller.IsModerator() {
			return errs.NotAllowed("review %d is blocked", reviewID)
		}

		return st.CreateComment(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// PatchComment edits a comment's content. Author-only.
func (s *Service) PatchComment(ctx context.Context, caller visibility.Caller, commentID int64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.InvalidRequest("content is required")
	}

	var comment *models.Comment
	err := s.store.Transact(ctx, func(st store) error {
		var err error
		comment, err = st.GetComment(ctx, commentID)
		if err != nil {
			return err
		}
		if comment == nil || comment.Deleted {
			return errs.NotFound("comment %d not found", commentID)
		}
		if comment.AuthorID != caller.ID {
			return errs.AccessDenied("only the author may edit this comment")
		}

		comment.Content = content
		return st.UpdateComment(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment soft-deletes a comment. Author-only; moderators use
// the block path on the owning review instead.
func (s *Service) DeleteComment(ctx context.Context, caller visibility.Caller, commentID int64) error {
	return s.store.Transact(ctx, func(st store) error {
		comment, err := st.GetComment(ctx, commentID)
		if err != nil {
			return err
		}
		if comment == nil || comment.Deleted {
			return errs.NotFound("comment %d not found", commentID)
		}
		if comment.AuthorID != caller.ID {
			return errs.AccessDenied("only the author may delete this comment")
		}

		return st.SoftDeleteComment(ctx, commentID, time.Now().UTC())
	})
}
