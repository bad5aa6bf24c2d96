// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	MaxDescriptionLen = 255
	MaxCommentLen     = 255
	MaxBioLen         = 255
	MaxContactLen     = 255
	MinCityLen        = 2
	MinPasswordLen    = 6
	MinResetPassword  = 8
	MaxPasswordLen    = 255
	MaxImageBytes     = 2 * 1024 * 1024
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks a login/registration password.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}
	return nil
}

// ValidateName checks a registration display name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 255 {
		return fmt.Errorf("name must not exceed 255 characters")
	}
	return nil
}

// ValidateDescription checks a post description.
func ValidateDescription(description string) error {
	if description == "" {
		return fmt.Errorf("description is required")
	}
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", MaxDescriptionLen)
	}
	return nil
}

// ValidateCommentText checks comment text.
func ValidateCommentText(text string) error {
	if text == "" {
		return fmt.Errorf("comment is required")
	}
	if len(text) > MaxCommentLen {
		return fmt.Errorf("comment must not exceed %d characters", MaxCommentLen)
	}
	return nil
}

// ValidateProfileFields checks the whitelisted profile fields.
func ValidateProfileFields(bio, city, contact string) error {
	if len(bio) > MaxBioLen {
		return fmt.Errorf("bio must not exceed %d characters", MaxBioLen)
	}
	if city != "" && len(city) < MinCityLen {
		return fmt.Errorf("city must be at least %d characters long", MinCityLen)
	}
	if len(contact) > MaxContactLen {
		return fmt.Errorf("contact must not exceed %d characters", MaxContactLen)
	}
	return nil
}

// ValidateImageUpload checks size and extension of an uploaded image file.
// Allowed formats: jpeg, jpg, png, gif. Max size 2MB.
func ValidateImageUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return fmt.Errorf("image file is required")
	}
	if fh.Size > MaxImageBytes {
		return fmt.Errorf("image must not exceed 2MB")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("image must be jpeg, jpg, png or gif")
	}
	return nil
}

// ValidateResetPassword checks the new password and its confirmation for a
// password reset.
func ValidateResetPassword(password, confirmation string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < MinResetPassword {
		return fmt.Errorf("password must be at least %d characters long", MinResetPassword)
	}
	if password != confirmation {
		return fmt.Errorf("password confirmation does not match")
	}
	return nil
}
