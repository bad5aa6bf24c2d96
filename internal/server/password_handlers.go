package server

import (
	"errors"

	"marketplus/internal/models"
	"marketplus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendResetLink handles POST /api/password/reset-link
func (s *Server) SendResetLink(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	if err := s.passwordService.SendResetLink(c.Context(), req.Email); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(MessageResponse{Message: "Password reset link sent"})
}

// ResetPassword handles POST /api/password/reset. Validation failures come
// back as 422 like the reset form treats them.
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email                string `json:"email"`
		Token                string `json:"token"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.passwordService.ResetPassword(c.Context(), service.ResetPasswordInput{
		Email:                req.Email,
		Token:                req.Token,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity, err)
		}
		return respondServiceError(c, err)
	}

	return c.JSON(MessageResponse{Message: "Password has been reset"})
}
