package models

import (
	"time"
)

// Heart represents a like edge between a user and a review.
// The composite primary key is the authoritative guard against
// duplicate edges; services pre-check only for the friendlier error.
type Heart struct {
	UserID    int64     `gorm:"primaryKey;column:user_id"`
	ReviewID  int64     `gorm:"primaryKey;column:review_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User   *User   `gorm:"foreignKey:UserID;references:ID"`
	Review *Review `gorm:"foreignKey:ReviewID;references:ID"`
}

// TableName specifies the table name for Heart
func (Heart) TableName() string {
	return "hearts"
}
