package visibility

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/spotlog/spotlog/internal/counters"
	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
)

type stubEdges struct {
	edges map[[2]int64]bool
}

func (s stubEdges) Exists(_ context.Context, a, b int64) (bool, error) {
	return s.edges[[2]int64{a, b}], nil
}

type stubCounts struct {
	user   counters.UserCounts
	review counters.ReviewCounts
}

func (s stubCounts) ForUser(_ context.Context, _ int64) (*counters.UserCounts, error) {
	u := s.user
	return &u, nil
}

func (s stubCounts) ForReview(_ context.Context, _ int64) (*counters.ReviewCounts, error) {
	r := s.review
	return &r, nil
}

func newTestPolicy(hearts, scraps, follows map[[2]int64]bool, counts stubCounts) *Policy {
	return NewPolicy(stubEdges{hearts}, stubEdges{scraps}, stubEdges{follows}, counts)
}

func blockedReview() *models.Review {
	return &models.Review{
		ID:          42,
		AuthorID:    7,
		Content:     "hidden content",
		Rating:      4,
		Location:    "somewhere",
		CreatedAt:   time.Now(),
		Blocked:     true,
		BlockReason: sql.NullString{String: "spam", Valid: true},
		Images:      []models.ReviewImage{{ReviewID: 42, Position: 1, URL: "https://img/1.jpg"}},
	}
}

func TestRevealReviewMasking(t *testing.T) {
	p := newTestPolicy(nil, nil, nil, stubCounts{})
	ctx := context.Background()

	tests := []struct {
		name        string
		review      *models.Review
		caller      Caller
		wantDeleted bool
		wantBlocked bool
	}{
		{
			name:        "deleted review renders placeholder for everyone",
			review:      &models.Review{ID: 1, AuthorID: 7, Deleted: true, Blocked: true},
			caller:      Caller{ID: 7, Role: models.RoleAdmin},
			wantDeleted: true,
		},
		{
			name:        "blocked review masked for stranger",
			review:      blockedReview(),
			caller:      Caller{ID: 99, Role: models.RoleUser},
			wantBlocked: true,
		},
		{
			name:   "blocked review visible to owner",
			review: blockedReview(),
			caller: Caller{ID: 7, Role: models.RoleUser},
		},
		{
			name:   "blocked review visible to moderator",
			review: blockedReview(),
			caller: Caller{ID: 99, Role: models.RoleModerator},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := p.RevealReview(ctx, tt.review, tt.caller)
			if err != nil {
				t.Fatalf("RevealReview: %v", err)
			}
			if view.Deleted != tt.wantDeleted || view.Blocked != tt.wantBlocked {
				t.Fatalf("mask = deleted:%v blocked:%v, want deleted:%v blocked:%v",
					view.Deleted, view.Blocked, tt.wantDeleted, tt.wantBlocked)
			}
			masked := tt.wantDeleted || tt.wantBlocked
			if masked {
				if view.Content != "" || len(view.Images) != 0 || view.Location != "" {
					t.Error("masked view leaked payload")
				}
				if view.ID != tt.review.ID || view.Type != TypeReview {
					t.Error("masked view must keep type and id")
				}
			} else {
				if view.Content == "" || len(view.Images) != 1 {
					t.Error("full view missing payload")
				}
			}
			if tt.wantBlocked && view.BlockReason != "spam" {
				t.Errorf("blocked view reason = %q, want spam", view.BlockReason)
			}
		})
	}
}

func TestRevealReviewStrict(t *testing.T) {
	p := newTestPolicy(nil, nil, nil, stubCounts{})
	ctx := context.Background()

	_, err := p.RevealReviewStrict(ctx, &models.Review{ID: 1, Deleted: true}, Caller{ID: 5})
	if !errs.Is(err, errs.CategoryNotFound) {
		t.Errorf("deleted direct fetch: got %s, want NOT_FOUND", errs.CategoryOf(err))
	}

	_, err = p.RevealReviewStrict(ctx, blockedReview(), Caller{ID: 99, Role: models.RoleUser})
	if !errs.Is(err, errs.CategoryNotAllowed) {
		t.Errorf("blocked direct fetch: got %s, want NOT_ALLOWED", errs.CategoryOf(err))
	}

	view, err := p.RevealReviewStrict(ctx, blockedReview(), Caller{ID: 7, Role: models.RoleUser})
	if err != nil {
		t.Fatalf("owner direct fetch: %v", err)
	}
	if !view.IsMine {
		t.Error("owner view should be marked mine")
	}
}

func TestRevealReviewCallerFlags(t *testing.T) {
	hearts := map[[2]int64]bool{{5, 42}: true}
	scraps := map[[2]int64]bool{}
	p := newTestPolicy(hearts, scraps, nil, stubCounts{review: counters.ReviewCounts{Hearts: 3, Comments: 1}})

	review := &models.Review{ID: 42, AuthorID: 7, Content: "nice place", Rating: 5, CreatedAt: time.Now()}

	view, err := p.RevealReview(context.Background(), review, Caller{ID: 5, Role: models.RoleUser})
	if err != nil {
		t.Fatalf("RevealReview: %v", err)
	}
	if !view.IsHearted || view.IsScraped || view.IsMine {
		t.Errorf("flags = hearted:%v scraped:%v mine:%v, want hearted only",
			view.IsHearted, view.IsScraped, view.IsMine)
	}
	if view.HeartCount != 3 || view.CommentCount != 1 {
		t.Errorf("counts = %d/%d, want 3/1", view.HeartCount, view.CommentCount)
	}

	// Anonymous callers get no caller-relative flags
	anon, err := p.RevealReview(context.Background(), review, Caller{})
	if err != nil {
		t.Fatalf("RevealReview anonymous: %v", err)
	}
	if anon.IsHearted || anon.IsScraped || anon.IsMine {
		t.Error("anonymous view must carry no caller flags")
	}
}

func TestRevealUser(t *testing.T) {
	follows := map[[2]int64]bool{
		{5, 9}: true, // caller follows target
	}
	p := newTestPolicy(nil, nil, follows, stubCounts{user: counters.UserCounts{Followers: 12, Following: 4}})

	user := &models.User{ID: 9, Username: "user-09", Level: 3, CreatedAt: time.Now()}

	view, err := p.RevealUser(context.Background(), user, Caller{ID: 5, Role: models.RoleUser})
	if err != nil {
		t.Fatalf("RevealUser: %v", err)
	}
	if !view.IsFollowing || view.IsFollower {
		t.Errorf("flags = following:%v follower:%v, want following only", view.IsFollowing, view.IsFollower)
	}
	if view.FollowerCount != 12 || view.FollowingCount != 4 {
		t.Errorf("counts = %d/%d, want 12/4", view.FollowerCount, view.FollowingCount)
	}
}

func TestRevealUserStrict(t *testing.T) {
	p := newTestPolicy(nil, nil, nil, stubCounts{})
	ctx := context.Background()

	deleted := &models.User{ID: 3, Deleted: true}
	if _, err := p.RevealUserStrict(ctx, deleted, Caller{ID: 5}); !errs.Is(err, errs.CategoryNotFound) {
		t.Error("deleted user direct fetch should be NOT_FOUND")
	}

	blocked := &models.User{ID: 3, Username: "u", Blocked: true, BlockReason: sql.NullString{String: "abuse", Valid: true}}
	if _, err := p.RevealUserStrict(ctx, blocked, Caller{ID: 5, Role: models.RoleUser}); !errs.Is(err, errs.CategoryNotAllowed) {
		t.Error("blocked user direct fetch should be NOT_ALLOWED")
	}
}

func TestRevealComment(t *testing.T) {
	p := newTestPolicy(nil, nil, nil, stubCounts{})

	deleted := &models.Comment{ID: 10, ReviewID: 42, AuthorID: 7, Content: "gone", Deleted: true}
	view, err := p.RevealComment(context.Background(), deleted, Caller{ID: 7})
	if err != nil {
		t.Fatalf("RevealComment: %v", err)
	}
	if !view.Deleted || view.Content != "" {
		t.Error("deleted comment must render as empty placeholder even for its author")
	}

	live := &models.Comment{ID: 11, ReviewID: 42, AuthorID: 7, Content: "still here", CreatedAt: time.Now()}
	view, err = p.RevealComment(context.Background(), live, Caller{ID: 7})
	if err != nil {
		t.Fatalf("RevealComment: %v", err)
	}
	if !view.IsMine || view.Content != "still here" {
		t.Error("live comment should render in full for its author")
	}
}
