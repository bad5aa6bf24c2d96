// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"fmt"

	"marketplus/internal/middleware"
	"marketplus/internal/models"
	"marketplus/internal/notifications"
	"marketplus/internal/repository"
	"marketplus/internal/validation"
)

// EventPublisher broadcasts notification events to connected clients.
type EventPublisher interface {
	PublishNewNotification(ctx context.Context, event *notifications.Event) error
}

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	publisher   EventPublisher
}

type CreateCommentInput struct {
	User   models.User
	PostID uint
	Text   string
}

type UpdateCommentInput struct {
	CommentID uint
	Text      string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	publisher EventPublisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		publisher:   publisher,
	}
}

// CreateComment stores the comment and, when the commenter is not the post
// owner, a notification for the owner in the same transaction. The broadcast
// goes out only after the transaction commits and is best-effort.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   in.Text,
		UserID: in.User.ID,
		PostID: in.PostID,
	}

	var notification *models.Notification
	if post.UserID != in.User.ID {
		notification = &models.Notification{
			Message:  fmt.Sprintf("%s commented on your post", in.User.Name),
			UserID:   post.UserID,
			SenderID: in.User.ID,
			PostID:   post.ID,
		}
	}

	if err := s.commentRepo.CreateWithNotification(ctx, comment, notification); err != nil {
		return nil, err
	}

	if notification != nil && s.publisher != nil {
		event := &notifications.Event{
			Message: notification.Message,
			Post:    post,
			Comment: comment,
			User:    &in.User,
		}
		if err := s.publisher.PublishNewNotification(ctx, event); err != nil {
			middleware.Logger.WarnContext(ctx, "notification broadcast failed",
				"comment_id", comment.ID, "error", err)
		}
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// UpdateComment replaces the comment text. Any authenticated user may edit
// any comment.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes the comment and its notifications. Any authenticated
// user may delete any comment.
func (s *CommentService) DeleteComment(ctx context.Context, commentID uint) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
