package repository

import (
	"context"

	"marketplus/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	// ListForRecipient returns notifications whose post belongs to the user,
	// newest first.
	ListForRecipient(ctx context.Context, userID uint) ([]*models.Notification, error)
	// DeleteForRecipient removes every notification addressed to the user.
	DeleteForRecipient(ctx context.Context, userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Joins("JOIN posts ON posts.id = notifications.post_id").
		Where("posts.user_id = ?", userID).
		Preload("User").
		Preload("Sender").
		Preload("Post").
		Preload("Comment").
		Order("notifications.created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) DeleteForRecipient(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Notification{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
