package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. It returns every
// notification whose post belongs to the current user.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	list, err := s.notificationRepo.ListForRecipient(c.Context(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(NotificationsResponse{Notifications: list})
}

// ClearNotifications handles DELETE /api/notifications. Only the current
// user's notifications are removed.
func (s *Server) ClearNotifications(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	if err := s.notificationRepo.DeleteForRecipient(c.Context(), user.ID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(MessageResponse{Message: "Notifications cleared"})
}
