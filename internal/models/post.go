// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a user's post. ImagePath is the storage-relative path of the
// optional uploaded image; the public URL is derived from it by the storage layer.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	ImagePath   string    `json:"image_path"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	Comments    []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
