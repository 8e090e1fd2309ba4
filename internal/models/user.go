package models

import (
	"database/sql"
	"time"
)

// User represents a registered user
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"type:varchar(30);not null;uniqueIndex:users_ux1;column:username"`
	PasswordHash string    `gorm:"type:varchar(100);not null;column:password_hash"`
	Role         string    `gorm:"type:varchar(16);not null;default:'user';column:role"`
	Level        int64     `gorm:"not null;default:1;column:level"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`

	// Profile fields
	ProfileImage string `gorm:"type:varchar(1024);not null;default:'';column:profile_image"`

	// Soft-state axes: deleted is terminal, blocked is reversible moderation
	Active      bool           `gorm:"not null;default:true;column:active"`
	Blocked     bool           `gorm:"not null;default:false;column:blocked"`
	BlockReason sql.NullString `gorm:"type:varchar(255);column:block_reason"`
	Deleted     bool           `gorm:"not null;default:false;column:deleted"`
	DeletedAt   sql.NullTime   `gorm:"column:deleted_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// User role constants
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)
