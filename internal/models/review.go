package models

import (
	"database/sql"
	"time"
)

// Review represents a user-authored review post
type Review struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID  int64     `gorm:"not null;index:reviews_ix_author;column:author_id"`
	Content   string    `gorm:"type:text;not null;column:content"`
	Rating    int16     `gorm:"type:smallint;not null;column:rating"`
	Location  string    `gorm:"type:varchar(255);not null;default:'';column:location"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Soft-state axes
	Blocked     bool           `gorm:"not null;default:false;column:blocked"`
	BlockReason sql.NullString `gorm:"type:varchar(255);column:block_reason"`
	Deleted     bool           `gorm:"not null;default:false;column:deleted"`
	DeletedAt   sql.NullTime   `gorm:"column:deleted_at"`

	// Relationships
	Author *User         `gorm:"foreignKey:AuthorID;references:ID"`
	Images []ReviewImage `gorm:"foreignKey:ReviewID;references:ID"`
}

// TableName specifies the table name for Review
func (Review) TableName() string {
	return "reviews"
}

// Rating bounds
const (
	RatingMin int16 = 1
	RatingMax int16 = 5
)

// Image count bounds per review
const (
	ImagesMin = 1
	ImagesMax = 10
)

// ReviewImage represents one image attached to a review, ordered by position
type ReviewImage struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;column:id"`
	ReviewID int64  `gorm:"not null;uniqueIndex:review_images_ux1;column:review_id"`
	Position int16  `gorm:"type:smallint;not null;uniqueIndex:review_images_ux1;column:position"`
	URL      string `gorm:"type:varchar(1024);not null;column:url"`
}

// TableName specifies the table name for ReviewImage
func (ReviewImage) TableName() string {
	return "review_images"
}
