package repository

import (
	"context"
	"errors"

	"marketplus/internal/models"

	"gorm.io/gorm"
)

// ProfileImageRepository defines persistence operations for profile images.
type ProfileImageRepository interface {
	// GetByUserID returns (nil, nil) when the user has no profile image.
	GetByUserID(ctx context.Context, userID uint) (*models.UserProfileImage, error)
	Save(ctx context.Context, image *models.UserProfileImage) error
	Delete(ctx context.Context, userID uint) error
}

type profileImageRepository struct {
	db *gorm.DB
}

// NewProfileImageRepository returns a new ProfileImageRepository implementation.
func NewProfileImageRepository(db *gorm.DB) ProfileImageRepository {
	return &profileImageRepository{db: db}
}

func (r *profileImageRepository) GetByUserID(ctx context.Context, userID uint) (*models.UserProfileImage, error) {
	var image models.UserProfileImage
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &image, nil
}

// Save inserts the row on first upload and updates it afterwards, so each
// user keeps at most one profile image record.
func (r *profileImageRepository) Save(ctx context.Context, image *models.UserProfileImage) error {
	existing, err := r.GetByUserID(ctx, image.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		image.ID = existing.ID
		image.CreatedAt = existing.CreatedAt
	}
	if err := r.db.WithContext(ctx).Save(image).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileImageRepository) Delete(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserProfileImage{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
