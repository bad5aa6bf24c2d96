package server

import "marketplus/internal/models"

// Response schemas. Every handler returns one of these shapes so the API
// surface is explicit rather than whatever the ORM happens to serialize.

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type PostResponse struct {
	Post *models.Post `json:"post"`
}

type PostsResponse struct {
	Posts []*models.Post `json:"posts"`
}

type CommentResponse struct {
	Comment *models.Comment `json:"comment"`
}

type NotificationsResponse struct {
	Notifications []*models.Notification `json:"notifications"`
}

type ProfileImageResponse struct {
	Image *models.UserProfileImage `json:"image"`
}
