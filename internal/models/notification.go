// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Notification records a "comment on a post you own" event. UserID is the
// recipient (the post owner), SenderID the commenter. Rows exist only for
// comments made by someone other than the post owner.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	CommentID uint      `gorm:"not null" json:"comment_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Sender    User      `gorm:"foreignKey:SenderID" json:"sender"`
	Post      Post      `gorm:"foreignKey:PostID" json:"post"`
	Comment   Comment   `gorm:"foreignKey:CommentID" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
