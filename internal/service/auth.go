package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/repository"
)

var ErrWrongPassword = errors.New("wrong password")

type AuthUserRepository interface {
	FindAccountByEmail(ctx context.Context, email string) (repository.Account, error)
	FindByID(ctx context.Context, id string) (domain.AppUser, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Login checks the credentials and returns the linked application profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AppUser, error) {
	account, err := s.repo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domain.AppUser{}, ErrUserNotFound
		}

		return domain.AppUser{}, fmt.Errorf("s.repo.FindAccountByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return domain.AppUser{}, ErrWrongPassword
	}

	user, err := s.repo.FindByID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.AppUser{}, ErrUserNotFound
		}

		return domain.AppUser{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// TriggerPasswordReset accepts a reset request for the given email.
// Whether the account exists is never revealed to the caller.
func (s *AuthService) TriggerPasswordReset(ctx context.Context, email string) error {
	_, err := s.repo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			zap.L().Info("password reset requested for unknown email")
			return nil
		}

		return fmt.Errorf("s.repo.FindAccountByEmail -> %w", err)
	}

	zap.L().Info("password reset requested", zap.String("email", email))

	return nil
}
