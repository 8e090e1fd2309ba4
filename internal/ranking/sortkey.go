package ranking

import (
	"fmt"

	"github.com/spotlog/spotlog/internal/errs"
)

// EntityKind selects the collection a page is taken over
type EntityKind string

// Entity kinds
const (
	KindUsers   EntityKind = "users"
	KindReviews EntityKind = "reviews"
)

// SortKey names a whitelisted sort attribute. Keys map to fixed,
// reviewed query fragments; nothing is derived from caller strings.
type SortKey string

// Sort keys
const (
	SortCreatedAt     SortKey = "createdAt"
	SortUsername      SortKey = "username"
	SortLevel         SortKey = "level"
	SortFollowerCount SortKey = "followerCount"
	SortRating        SortKey = "rating"
	SortHeartCount    SortKey = "heartCount"
)

// Aggregate keys order by a live COUNT over the relation table so the
// ordering always reflects current data; see internal/counters for why
// no cached column exists to read instead.
var userSortFragments = map[SortKey]string{
	SortCreatedAt:     "users.created_at",
	SortUsername:      "users.username",
	SortLevel:         "users.level",
	SortFollowerCount: "(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id)",
}

var reviewSortFragments = map[SortKey]string{
	SortCreatedAt:  "reviews.created_at",
	SortRating:     "reviews.rating",
	SortHeartCount: "(SELECT COUNT(*) FROM hearts WHERE hearts.review_id = reviews.id)",
}

// sortFragment resolves a sort key to its query fragment, failing with
// InvalidRequest for keys outside the per-kind whitelist
func sortFragment(kind EntityKind, key SortKey) (string, error) {
	var fragments map[SortKey]string
	switch kind {
	case KindUsers:
		fragments = userSortFragments
	case KindReviews:
		fragments = reviewSortFragments
	default:
		return "", errs.InvalidRequest("unknown entity kind: %s", kind)
	}

	fragment, ok := fragments[key]
	if !ok {
		return "", errs.InvalidRequest("invalid sort key for %s: %s", kind, key)
	}
	return fragment, nil
}

// orderClause builds the full ORDER BY expression. Creation time and id
// are always appended as tie-breaks so rows with equal primary sort
// values never reorder between requests.
func orderClause(kind EntityKind, key SortKey, ascending bool) (string, error) {
	fragment, err := sortFragment(kind, key)
	if err != nil {
		return "", err
	}

	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	table := string(kind)
	return fmt.Sprintf("%s %s, %s.created_at DESC, %s.id DESC", fragment, direction, table, table), nil
}
