// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserProfileImage holds the single stored profile image for a user.
type UserProfileImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
