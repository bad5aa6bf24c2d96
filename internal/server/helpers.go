package server

import (
	"errors"
	"net/url"

	"marketplus/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param != "id" {
			label = param
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUser resolves the authenticated user's record. A token whose account
// no longer exists is rejected with 403, matching the behavior of handlers
// that resolve the acting user before doing anything else.
func (s *Server) currentUser(c *fiber.Ctx) (models.User, error) {
	userID, _ := c.Locals("userID").(uint)
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			_ = models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Forbidden"))
			return models.User{}, errResponseWritten
		}
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
		return models.User{}, errResponseWritten
	}
	return *user, nil
}

// unescapeParam returns a route parameter with URL escaping undone.
func unescapeParam(c *fiber.Ctx, param string) (string, error) {
	return url.PathUnescape(c.Params(param))
}

// statusForError maps AppError codes to HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	case models.CodeEmailTaken, models.CodeInvalidToken:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes the response for an error bubbling up from the
// service or repository layer.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
