package server

import (
	"marketplus/internal/models"
	"marketplus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/user/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(UserResponse{User: user})
}

// GetUserProfile handles GET /api/user/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(UserResponse{User: user})
}

// UpdateProfile handles PUT /api/profile/update. Only bio, city and contact
// are writable; anything else in the body is ignored.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Bio     string `json:"bio"`
		City    string `json:"city"`
		Contact string `json:"contact"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:  user.ID,
		Bio:     req.Bio,
		City:    req.City,
		Contact: req.Contact,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(UserResponse{User: updated})
}
