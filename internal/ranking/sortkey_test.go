package ranking

import (
	"strings"
	"testing"

	"github.com/spotlog/spotlog/internal/errs"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name      string
		kind      EntityKind
		key       SortKey
		ascending bool
		expected  string
		wantErr   bool
	}{
		{
			name:      "users by username ascending",
			kind:      KindUsers,
			key:       SortUsername,
			ascending: true,
			expected:  "users.username ASC, users.created_at DESC, users.id DESC",
		},
		{
			name:     "users by level descending",
			kind:     KindUsers,
			key:      SortLevel,
			expected: "users.level DESC, users.created_at DESC, users.id DESC",
		},
		{
			name:     "users by follower count uses live subquery",
			kind:     KindUsers,
			key:      SortFollowerCount,
			expected: "(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id) DESC, users.created_at DESC, users.id DESC",
		},
		{
			name:     "reviews by created at",
			kind:     KindReviews,
			key:      SortCreatedAt,
			expected: "reviews.created_at DESC, reviews.created_at DESC, reviews.id DESC",
		},
		{
			name:     "reviews by rating",
			kind:     KindReviews,
			key:      SortRating,
			expected: "reviews.rating DESC, reviews.created_at DESC, reviews.id DESC",
		},
		{
			name:     "reviews by heart count uses live subquery",
			kind:     KindReviews,
			key:      SortHeartCount,
			expected: "(SELECT COUNT(*) FROM hearts WHERE hearts.review_id = reviews.id) DESC, reviews.created_at DESC, reviews.id DESC",
		},
		{
			name:    "rating is not a user sort key",
			kind:    KindUsers,
			key:     SortRating,
			wantErr: true,
		},
		{
			name:    "username is not a review sort key",
			kind:    KindReviews,
			key:     SortUsername,
			wantErr: true,
		},
		{
			name:    "free-text key rejected",
			kind:    KindUsers,
			key:     SortKey("password_hash; DROP TABLE users"),
			wantErr: true,
		},
		{
			name:    "unknown entity kind rejected",
			kind:    EntityKind("comments"),
			key:     SortCreatedAt,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orderClause(tt.kind, tt.key, tt.ascending)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("orderClause(%s, %s) expected error", tt.kind, tt.key)
				}
				if !errs.Is(err, errs.CategoryInvalidRequest) {
					t.Errorf("Expected INVALID_REQUEST, got %s", errs.CategoryOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("orderClause(%s, %s) unexpected error: %v", tt.kind, tt.key, err)
			}
			if got != tt.expected {
				t.Errorf("orderClause() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOrderClauseTieBreak(t *testing.T) {
	// Every clause must end with the deterministic tie-break so rows
	// with equal primary sort values never reorder between requests.
	for key := range userSortFragments {
		clause, err := orderClause(KindUsers, key, true)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", key, err)
		}
		if !strings.HasSuffix(clause, "users.created_at DESC, users.id DESC") {
			t.Errorf("clause for %s missing tie-break: %q", key, clause)
		}
	}
}
