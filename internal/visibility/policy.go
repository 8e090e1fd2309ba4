package visibility

import (
	"context"

	"github.com/spotlog/spotlog/internal/counters"
	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
)

// EdgeChecker is a point lookup over one (a, b) relation edge
type EdgeChecker interface {
	Exists(ctx context.Context, a, b int64) (bool, error)
}

// CountSource supplies the live aggregate counts rendered on views
type CountSource interface {
	ForUser(ctx context.Context, userID int64) (*counters.UserCounts, error)
	ForReview(ctx context.Context, reviewID int64) (*counters.ReviewCounts, error)
}

// Policy decides, for any entity instance, whether it is rendered in
// full, masked, or absent for a given caller. Every read path (list,
// direct fetch, nested reference) goes through the same Reveal
// methods; the only difference is that direct fetches convert masked
// results into errors via the Strict variants.
type Policy struct {
	hearts  EdgeChecker
	scraps  EdgeChecker
	follows EdgeChecker
	counts  CountSource
}

// NewPolicy creates a new visibility policy
func NewPolicy(hearts, scraps, follows EdgeChecker, counts CountSource) *Policy {
	return &Policy{hearts: hearts, scraps: scraps, follows: follows, counts: counts}
}

// mask is the outcome of the rule table
type mask int

const (
	maskNone mask = iota
	maskDeleted
	maskBlocked
)

// maskOf evaluates the rule table in priority order: deleted wins over
// blocked; owners and moderators see through blocks but not deletes.
func maskOf(deleted, blocked, isOwner bool, caller Caller) mask {
	if deleted {
		return maskDeleted
	}
	if blocked && !isOwner && !caller.IsModerator() {
		return maskBlocked
	}
	return maskNone
}

// RevealUser renders a user for the caller, masking in place
func (p *Policy) RevealUser(ctx context.Context, user *models.User, caller Caller) (*UserView, error) {
	switch maskOf(user.Deleted, user.Blocked, caller.ID == user.ID, caller) {
	case maskDeleted:
		return &UserView{Type: TypeUser, ID: user.ID, Deleted: true}, nil
	case maskBlocked:
		return &UserView{Type: TypeUser, ID: user.ID, Blocked: true, BlockReason: user.BlockReason.String}, nil
	}

	counts, err := p.counts.ForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	createdAt := user.CreatedAt
	view := &UserView{
		Type:           TypeUser,
		ID:             user.ID,
		Username:       user.Username,
		Level:          user.Level,
		ProfileImage:   user.ProfileImage,
		CreatedAt:      &createdAt,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
		IsMine:         caller.ID == user.ID,
	}

	if !caller.IsAnonymous() && caller.ID != user.ID {
		if view.IsFollowing, err = p.follows.Exists(ctx, caller.ID, user.ID); err != nil {
			return nil, err
		}
		if view.IsFollower, err = p.follows.Exists(ctx, user.ID, caller.ID); err != nil {
			return nil, err
		}
	}

	return view, nil
}

// RevealUserStrict renders a user for a direct-by-id fetch: deleted
// surfaces NotFound, blocked surfaces NotAllowed
func (p *Policy) RevealUserStrict(ctx context.Context, user *models.User, caller Caller) (*UserView, error) {
	switch maskOf(user.Deleted, user.Blocked, caller.ID == user.ID, caller) {
	case maskDeleted:
		return nil, errs.NotFound("user %d not found", user.ID)
	case maskBlocked:
		return nil, errs.NotAllowed("user %d is blocked", user.ID)
	}
	return p.RevealUser(ctx, user, caller)
}

// RevealReview renders a review for the caller, masking in place.
// Image URLs inside a masked review are withheld even though the rows
// are retained for moderation audit.
func (p *Policy) RevealReview(ctx context.Context, review *models.Review, caller Caller) (*ReviewView, error) {
	switch maskOf(review.Deleted, review.Blocked, caller.ID == review.AuthorID, caller) {
	case maskDeleted:
		return &ReviewView{Type: TypeReview, ID: review.ID, Deleted: true}, nil
	case maskBlocked:
		return &ReviewView{Type: TypeReview, ID: review.ID, Blocked: true, BlockReason: review.BlockReason.String}, nil
	}

	counts, err := p.counts.ForReview(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0, len(review.Images))
	for _, img := range review.Images {
		images = append(images, img.URL)
	}

	createdAt := review.CreatedAt
	view := &ReviewView{
		Type:         TypeReview,
		ID:           review.ID,
		AuthorID:     review.AuthorID,
		Content:      review.Content,
		Rating:       review.Rating,
		Location:     review.Location,
		Images:       images,
		CreatedAt:    &createdAt,
		HeartCount:   counts.Hearts,
		ScrapCount:   counts.Scraps,
		CommentCount: counts.Comments,
		IsMine:       caller.ID == review.AuthorID,
	}

	if !caller.IsAnonymous() {
		if view.IsHearted, err = p.hearts.Exists(ctx, caller.ID, review.ID); err != nil {
			return nil, err
		}
		if view.IsScraped, err = p.scraps.Exists(ctx, caller.ID, review.ID); err != nil {
			return nil, err
		}
	}

	return view, nil
}

// RevealReviewStrict renders a review for a direct-by-id fetch
func (p *Policy) RevealReviewStrict(ctx context.Context, review *models.Review, caller Caller) (*ReviewView, error) {
	switch maskOf(review.Deleted, review.Blocked, caller.ID == review.AuthorID, caller) {
	case maskDeleted:
		return nil, errs.NotFound("review %d not found", review.ID)
	case maskBlocked:
		return nil, errs.NotAllowed("review %d is blocked", review.ID)
	}
	return p.RevealReview(ctx, review, caller)
}

// RevealComment renders a comment for the caller. Comments have no
// block axis; only the deleted placeholder applies.
func (p *Policy) RevealComment(_ context.Context, comment *models.Comment, caller Caller) (*CommentView, error) {
	if comment.Deleted {
		return &CommentView{Type: TypeComment, ID: comment.ID, Deleted: true}, nil
	}

	createdAt := comment.CreatedAt
	return &CommentView{
		Type:      TypeComment,
		ID:        comment.ID,
		ReviewID:  comment.ReviewID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: &createdAt,
		IsMine:    caller.ID == comment.AuthorID,
	}, nil
}
