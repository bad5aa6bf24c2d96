package server

import (
	"marketplus/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadProfileImage handles POST /api/profile/upload-image
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	image, err := s.profileImageService.Upload(c.Context(), user.ID, fh)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ProfileImageResponse{Image: image})
}

// DeleteProfileImage handles DELETE /api/profile/delete-image
func (s *Server) DeleteProfileImage(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	if err := s.profileImageService.Delete(c.Context(), user.ID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(MessageResponse{Message: "Profile image deleted"})
}
