package visibility

import (
	"time"

	"github.com/spotlog/spotlog/internal/models"
)

// Caller identifies the acting user on every core call. A zero ID is
// an anonymous caller. No ambient security context exists; the caller
// is threaded explicitly.
type Caller struct {
	ID   int64
	Role string
}

// IsModerator reports whether the caller may see blocked content
func (c Caller) IsModerator() bool {
	return c.Role == models.RoleModerator || c.Role == models.RoleAdmin
}

// IsAnonymous reports whether no authenticated user is acting
func (c Caller) IsAnonymous() bool {
	return c.ID == 0
}

// View type discriminators
const (
	TypeUser    = "user"
	TypeReview  = "review"
	TypeComment = "comment"
)

// UserView is the rendered form of a user. For masked entities only
// the type, id and mask state survive; payload fields stay zero.
type UserView struct {
	Type        string `json:"type"`
	ID          int64  `json:"id"`
	Deleted     bool   `json:"deleted,omitempty"`
	Blocked     bool   `json:"blocked,omitempty"`
	BlockReason string `json:"block_reason,omitempty"`

	Username     string     `json:"username,omitempty"`
	Level        int64      `json:"level,omitempty"`
	ProfileImage string     `json:"profile_image,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`

	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`

	IsMine      bool `json:"is_mine"`
	IsFollowing bool `json:"is_following"`
	IsFollower  bool `json:"is_follower"`
}

// ReviewView is the rendered form of a review
type ReviewView struct {
	Type        string `json:"type"`
	ID          int64  `json:"id"`
	Deleted     bool   `json:"deleted,omitempty"`
	Blocked     bool   `json:"blocked,omitempty"`
	BlockReason string `json:"block_reason,omitempty"`

	AuthorID  int64      `json:"author_id,omitempty"`
	Content   string     `json:"content,omitempty"`
	Rating    int16      `json:"rating,omitempty"`
	Location  string     `json:"location,omitempty"`
	Images    []string   `json:"images,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`

	HeartCount   int64 `json:"heart_count"`
	ScrapCount   int64 `json:"scrap_count"`
	CommentCount int64 `json:"comment_count"`

	IsMine    bool `json:"is_mine"`
	IsHearted bool `json:"is_hearted"`
	IsScraped bool `json:"is_scraped"`
}

// CommentView is the rendered form of a comment
type CommentView struct {
	Type    string `json:"type"`
	ID      int64  `json:"id"`
	Deleted bool   `json:"deleted,omitempty"`

	ReviewID  int64      `json:"review_id,omitempty"`
	AuthorID  int64      `json:"author_id,omitempty"`
	Content   string     `json:"content,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`

	IsMine bool `json:"is_mine"`
}

// ScrapView pairs a scrap note with the rendered review it bookmarks.
// The embedded review passes the same visibility policy as any other
// read path.
type ScrapView struct {
	ReviewID    int64       `json:"review_id"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	Review      *ReviewView `json:"review"`
}
