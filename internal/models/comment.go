package models

import (
	"database/sql"
	"time"
)

// Comment represents a comment on a review. Comments carry only the
// deleted axis; moderation blocks apply to users and reviews.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID  int64     `gorm:"not null;index:comments_ix_author;column:author_id"`
	ReviewID  int64     `gorm:"not null;index:comments_ix_review;column:review_id"`
	Content   string    `gorm:"type:text;not null;column:content"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	Deleted   bool         `gorm:"not null;default:false;column:deleted"`
	DeletedAt sql.NullTime `gorm:"column:deleted_at"`

	// Relationships
	Author *User   `gorm:"foreignKey:AuthorID;references:ID"`
	Review *Review `gorm:"foreignKey:ReviewID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
