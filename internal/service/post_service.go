package service

import (
	"context"
	"mime/multipart"

	"marketplus/internal/middleware"
	"marketplus/internal/models"
	"marketplus/internal/repository"
	"marketplus/internal/storage"
	"marketplus/internal/validation"
)

// postImageDir is the directory under the storage root for post images.
const postImageDir = "posts"

type PostService struct {
	postRepo repository.PostRepository
	store    *storage.Store
}

type CreatePostInput struct {
	UserID      uint
	Description string
	Image       *multipart.FileHeader
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Description string
	Image       *multipart.FileHeader
}

func NewPostService(postRepo repository.PostRepository, store *storage.Store) *PostService {
	return &PostService{postRepo: postRepo, store: store}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) SearchPosts(ctx context.Context, query string) ([]*models.Post, error) {
	return s.postRepo.Search(ctx, query)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Description: in.Description,
		UserID:      in.UserID,
	}

	if in.Image != nil {
		if err := validation.ValidateImageUpload(in.Image); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		path, err := s.store.Save(postImageDir, in.Image)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.ImagePath = path
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if post.ImagePath != "" {
			_ = s.store.Delete(post.ImagePath)
		}
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost changes the description and optionally the image. Only the post
// owner may update it. A new image is stored before the old one is removed.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Description = in.Description

	if in.Image != nil {
		if err := validation.ValidateImageUpload(in.Image); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		newPath, err := s.store.Replace(postImageDir, in.Image, post.ImagePath)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.ImagePath = newPath
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post, its comments and its stored image. Only the
// post owner may delete it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImagePath != "" {
		if err := s.store.Delete(post.ImagePath); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to remove post image",
				"post_id", postID, "path", post.ImagePath, "error", err)
		}
	}

	return nil
}
