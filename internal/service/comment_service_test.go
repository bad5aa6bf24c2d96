package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"marketplus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil)
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{User: models.User{ID: 1}, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			User:   models.User{ID: 1},
			PostID: 1,
			Text:   strings.Repeat("x", 256),
		})
		assertValidationError(t, err)
	})

	t.Run("post not found propagates repo error", func(t *testing.T) {
		t.Parallel()
		repoErr := models.NewNotFoundError("Post", 99)
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, repoErr
		}
		svc2 := NewCommentService(noopCommentRepo(), postRepo, nil)
		_, err := svc2.CreateComment(ctx, CreateCommentInput{User: models.User{ID: 1}, PostID: 99, Text: "hi"})
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestCommentService_CreateComment_NotifiesPostOwner(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10, Description: "owner's post"}, nil
	}

	var storedNotification *models.Notification
	commentRepo := noopCommentRepo()
	commentRepo.createWithNtFn = func(_ context.Context, c *models.Comment, n *models.Notification) error {
		c.ID = 42
		storedNotification = n
		return nil
	}

	publisher := &publisherStub{}
	svc := NewCommentService(commentRepo, postRepo, publisher)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		User:   models.User{ID: 2, Name: "Alice"},
		PostID: 1,
		Text:   "great post",
	})
	require.NoError(t, err)

	require.NotNil(t, storedNotification)
	assert.Equal(t, uint(10), storedNotification.UserID)
	assert.Equal(t, uint(2), storedNotification.SenderID)
	assert.Equal(t, "Alice commented on your post", storedNotification.Message)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "Alice commented on your post", publisher.events[0].Message)
	assert.Equal(t, "Alice", publisher.events[0].User.Name)
}

func TestCommentService_CreateComment_OwnPostSkipsNotification(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2}, nil
	}

	var storedNotification *models.Notification
	commentRepo := noopCommentRepo()
	commentRepo.createWithNtFn = func(_ context.Context, c *models.Comment, n *models.Notification) error {
		c.ID = 42
		storedNotification = n
		return nil
	}

	publisher := &publisherStub{}
	svc := NewCommentService(commentRepo, postRepo, publisher)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		User:   models.User{ID: 2, Name: "Alice"},
		PostID: 1,
		Text:   "note to self",
	})
	require.NoError(t, err)
	assert.Nil(t, storedNotification)
	assert.Empty(t, publisher.events)
}

func TestCommentService_CreateComment_PublishFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10}, nil
	}
	commentRepo := noopCommentRepo()
	commentRepo.createWithNtFn = func(_ context.Context, c *models.Comment, _ *models.Notification) error {
		c.ID = 7
		return nil
	}

	publisher := &publisherStub{err: errors.New("redis down")}
	svc := NewCommentService(commentRepo, postRepo, publisher)

	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		User:   models.User{ID: 2, Name: "Alice"},
		PostID: 1,
		Text:   "still works",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), comment.ID)
}

func TestCommentService_UpdateComment_AnyUserMayEdit(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 99, Text: "original"}, nil
	}
	var updated *models.Comment
	commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
		updated = c
		return nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo(), nil)
	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{CommentID: 1, Text: "edited"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "edited", updated.Text)
}

func TestCommentService_UpdateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil)
	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{CommentID: 1, Text: ""})
	assertValidationError(t, err)
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing comment", func(t *testing.T) {
		t.Parallel()
		var deletedID uint
		commentRepo := noopCommentRepo()
		commentRepo.deleteFn = func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		require.NoError(t, svc.DeleteComment(context.Background(), 5))
		assert.Equal(t, uint(5), deletedID)
	})

	t.Run("missing comment propagates not found", func(t *testing.T) {
		t.Parallel()
		repoErr := models.NewNotFoundError("Comment", 5)
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return nil, repoErr
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		assert.ErrorIs(t, svc.DeleteComment(context.Background(), 5), repoErr)
	})
}
