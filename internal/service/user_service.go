package service

import (
	"context"

	"marketplus/internal/models"
	"marketplus/internal/repository"
	"marketplus/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	TermsOfService bool
}

type UpdateProfileInput struct {
	UserID  uint
	Bio     string
	City    string
	Contact string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates the input, hashes the password and creates the account.
// The terms of service must be accepted.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !in.TermsOfService {
		return nil, models.NewValidationError("The terms of service must be accepted")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:           in.Name,
		Email:          in.Email,
		Password:       string(hashed),
		TermsOfService: in.TermsOfService,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the credentials. Unknown email and wrong password
// both come back as the same forbidden error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewForbiddenError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewForbiddenError("Invalid credentials")
	}
	return user, nil
}

// GetUser returns the user with profile image and posts preloaded.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithProfile(ctx, id)
}

// UpdateProfile writes the whitelisted profile fields and returns the fresh
// record.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := validation.ValidateProfileFields(in.Bio, in.City, in.Contact); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.userRepo.UpdateProfile(ctx, in.UserID, in.Bio, in.City, in.Contact); err != nil {
		return nil, err
	}

	return s.userRepo.GetByIDWithProfile(ctx, in.UserID)
}
