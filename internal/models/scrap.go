package models

import (
	"time"
)

// Scrap represents a bookmark edge between a user and a review,
// carrying a user-authored note.
type Scrap struct {
	UserID      int64     `gorm:"primaryKey;column:user_id"`
	ReviewID    int64     `gorm:"primaryKey;column:review_id"`
	Description string    `gorm:"type:varchar(255);not null;default:'';column:description"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User   *User   `gorm:"foreignKey:UserID;references:ID"`
	Review *Review `gorm:"foreignKey:ReviewID;references:ID"`
}

// TableName specifies the table name for Scrap
func (Scrap) TableName() string {
	return "scraps"
}
