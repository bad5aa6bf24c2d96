// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the MarketPlus application.
// Password is the bcrypt hash and is never serialized.
type User struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Name           string            `gorm:"not null" json:"name"`
	Email          string            `gorm:"unique;not null" json:"email"`
	Password       string            `gorm:"not null" json:"-"`
	Bio            string            `json:"bio"`
	City           string            `json:"city"`
	Contact        string            `json:"contact"`
	TermsOfService bool              `gorm:"not null;default:false" json:"terms_of_service"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	ProfileImage   *UserProfileImage `gorm:"foreignKey:UserID" json:"profile_image,omitempty"`
	Posts          []Post            `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
