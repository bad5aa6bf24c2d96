package server

import (
	"marketplus/internal/models"
	"marketplus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/post
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(PostsResponse{Posts: posts})
}

// GetPost handles GET /api/post/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(PostResponse{Post: post})
}

// SearchPosts handles GET /api/post/search/:query
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	if _, err := s.currentUser(c); err != nil {
		return nil
	}

	query, err := unescapeParam(c, "query")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid search query"))
	}

	posts, err := s.postService.SearchPosts(c.Context(), query)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(PostsResponse{Posts: posts})
}

// CreatePost handles POST /api/post (multipart: description + optional image)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	description := c.FormValue("description")
	fh, fhErr := c.FormFile("image")
	if fhErr != nil {
		fh = nil
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      userID,
		Description: description,
		Image:       fh,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(PostResponse{Post: post})
}

// UpdatePost handles PUT /api/post/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := c.Locals("userID").(uint)

	description := c.FormValue("description")
	if description == "" {
		var req struct {
			Description string `json:"description"`
		}
		if err := c.BodyParser(&req); err == nil {
			description = req.Description
		}
	}
	fh, fhErr := c.FormFile("image")
	if fhErr != nil {
		fh = nil
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:      userID,
		PostID:      id,
		Description: description,
		Image:       fh,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(PostResponse{Post: post})
}

// DeletePost handles DELETE /api/post/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := c.Locals("userID").(uint)

	if err := s.postService.DeletePost(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(MessageResponse{Message: "Post deleted"})
}
