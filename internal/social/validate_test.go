package social

import (
	"testing"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
	"github.com/spotlog/spotlog/internal/visibility"
)

func TestValidateFollowPair(t *testing.T) {
	if err := validateFollowPair(1, 2); err != nil {
		t.Errorf("distinct users should pass: %v", err)
	}

	err := validateFollowPair(5, 5)
	if err == nil {
		t.Fatal("self-follow must be rejected")
	}
	if !errs.Is(err, errs.CategoryInvalidRequest) {
		t.Errorf("self-follow: got %s, want INVALID_REQUEST", errs.CategoryOf(err))
	}
}

func TestValidateReactionTarget(t *testing.T) {
	tests := []struct {
		name     string
		caller   visibility.Caller
		review   *models.Review
		category errs.Category
	}{
		{
			name:   "visible foreign review passes",
			caller: visibility.Caller{ID: 5, Role: models.RoleUser},
			review: &models.Review{ID: 1, AuthorID: 7},
		},
		{
			name:     "missing review",
			caller:   visibility.Caller{ID: 5},
			review:   nil,
			category: errs.CategoryNotFound,
		},
		{
			name:     "deleted review",
			caller:   visibility.Caller{ID: 5},
			review:   &models.Review{ID: 1, AuthorID: 7, Deleted: true},
			category: errs.CategoryNotFound,
		},
		{
			name:     "own review",
			caller:   visibility.Caller{ID: 7, Role: models.RoleUser},
			review:   &models.Review{ID: 1, AuthorID: 7},
			category: errs.CategoryInvalidRequest,
		},
		{
			name:     "blocked review for plain user",
			caller:   visibility.Caller{ID: 5, Role: models.RoleUser},
			review:   &models.Review{ID: 1, AuthorID: 7, Blocked: true},
			category: errs.CategoryNotAllowed,
		},
		{
			name:   "blocked review for moderator",
			caller: visibility.Caller{ID: 5, Role: models.RoleModerator},
			review: &models.Review{ID: 1, AuthorID: 7, Blocked: true},
		},
		{
			// Deleted wins over own-review: the caller learns nothing
			// beyond absence.
			name:     "deleted own review",
			caller:   visibility.Caller{ID: 7},
			review:   &models.Review{ID: 1, AuthorID: 7, Deleted: true},
			category: errs.CategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReactionTarget(tt.caller, tt.review)
			if tt.category == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected %s error", tt.category)
			}
			if !errs.Is(err, tt.category) {
				t.Errorf("got %s, want %s", errs.CategoryOf(err), tt.category)
			}
		})
	}
}

func TestValidateReviewInput(t *testing.T) {
	valid := ReviewInput{Content: "great ramen", Rating: 4, Location: "seoul", Images: []string{"a.jpg"}}
	if err := validateReviewInput(valid); err != nil {
		t.Errorf("valid input should pass: %v", err)
	}

	tests := []struct {
		name string
		in   ReviewInput
	}{
		{name: "blank content", in: ReviewInput{Content: "  ", Rating: 3, Images: []string{"a"}}},
		{name: "rating too low", in: ReviewInput{Content: "x", Rating: 0, Images: []string{"a"}}},
		{name: "rating too high", in: ReviewInput{Content: "x", Rating: 6, Images: []string{"a"}}},
		{name: "no images", in: ReviewInput{Content: "x", Rating: 3}},
		{name: "too many images", in: ReviewInput{Content: "x", Rating: 3, Images: make([]string, 11)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReviewInput(tt.in)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errs.Is(err, errs.CategoryInvalidRequest) {
				t.Errorf("got %s, want INVALID_REQUEST", errs.CategoryOf(err))
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	if err := validateUsername("user-01"); err != nil {
		t.Errorf("valid username should pass: %v", err)
	}
	if err := validateUsername(""); err == nil {
		t.Error("empty username must be rejected")
	}
	long := make([]byte, 31)
	for i := range long {
		long[i] = 'a'
	}
	if err := validateUsername(string(long)); err == nil {
		t.Error("over-long username must be rejected")
	}
}
