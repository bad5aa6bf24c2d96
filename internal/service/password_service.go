package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"marketplus/internal/mailer"
	"marketplus/internal/models"
	"marketplus/internal/repository"
	"marketplus/internal/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	// resetTokenTTL bounds how long a password reset link stays valid.
	resetTokenTTL = 60 * time.Minute

	resetKeyPrefix = "pwreset:"
)

type PasswordService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client
	mail     mailer.Mailer
	appURL   string
}

type ResetPasswordInput struct {
	Email                string
	Token                string
	Password             string
	PasswordConfirmation string
}

func NewPasswordService(userRepo repository.UserRepository, rdb *redis.Client, mail mailer.Mailer, appURL string) *PasswordService {
	return &PasswordService{
		userRepo: userRepo,
		rdb:      rdb,
		mail:     mail,
		appURL:   appURL,
	}
}

func resetKey(email string) string {
	return resetKeyPrefix + email
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// SendResetLink issues a single-use reset token for the account and mails the
// reset link. Only the SHA-256 hash of the token is stored.
func (s *PasswordService) SendResetLink(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User with email", email)
	}
	if s.rdb == nil {
		return models.NewInternalError(fmt.Errorf("password resets require redis"))
	}

	token := uuid.New().String()
	if err := s.rdb.Set(ctx, resetKey(email), hashToken(token), resetTokenTTL).Err(); err != nil {
		return models.NewInternalError(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s", s.appURL, token, email)
	if err := s.mail.SendPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
		return models.NewDispatchError(err)
	}

	return nil
}

// ResetPassword consumes the token and sets the new password. The token is
// deleted before the password update so it can never be replayed.
func (s *PasswordService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := validation.ValidateResetPassword(in.Password, in.PasswordConfirmation); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewInvalidTokenError("This password reset token is invalid")
	}
	if s.rdb == nil {
		return models.NewInternalError(fmt.Errorf("password resets require redis"))
	}

	stored, err := s.rdb.Get(ctx, resetKey(in.Email)).Result()
	if err == redis.Nil {
		return models.NewInvalidTokenError("This password reset token is invalid")
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	if stored != hashToken(in.Token) {
		return models.NewInvalidTokenError("This password reset token is invalid")
	}

	if err := s.rdb.Del(ctx, resetKey(in.Email)).Err(); err != nil {
		return models.NewInternalError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashed))
}
