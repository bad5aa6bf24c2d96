package service

import (
	"context"
	"mime/multipart"

	"marketplus/internal/middleware"
	"marketplus/internal/models"
	"marketplus/internal/repository"
	"marketplus/internal/storage"
	"marketplus/internal/validation"
)

// profileImageDir is the directory under the storage root for profile images.
const profileImageDir = "profile-images"

type ProfileImageService struct {
	imageRepo repository.ProfileImageRepository
	store     *storage.Store
}

func NewProfileImageService(imageRepo repository.ProfileImageRepository, store *storage.Store) *ProfileImageService {
	return &ProfileImageService{imageRepo: imageRepo, store: store}
}

// Upload stores the image and records it for the user. On a re-upload the new
// file is written before the previous one is removed.
func (s *ProfileImageService) Upload(ctx context.Context, userID uint, fh *multipart.FileHeader) (*models.UserProfileImage, error) {
	if err := validation.ValidateImageUpload(fh); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.imageRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldPath := ""
	if existing != nil {
		oldPath = existing.ImagePath
	}

	newPath, err := s.store.Replace(profileImageDir, fh, oldPath)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	image := &models.UserProfileImage{
		UserID:    userID,
		ImagePath: newPath,
	}
	if err := s.imageRepo.Save(ctx, image); err != nil {
		_ = s.store.Delete(newPath)
		return nil, err
	}

	return image, nil
}

// Delete removes the user's profile image record and its stored file. Deleting
// when no image exists is a no-op, so repeated deletes succeed.
func (s *ProfileImageService) Delete(ctx context.Context, userID uint) error {
	existing, err := s.imageRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := s.imageRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := s.store.Delete(existing.ImagePath); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to remove profile image file",
			"user_id", userID, "path", existing.ImagePath, "error", err)
	}

	return nil
}
