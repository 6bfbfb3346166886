package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/pkg/sanitize"
	"github.com/leoclub/points-tracker-api/internal/repository"
)

var (
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrUsernameExists     = repository.ErrUsernameExists
	ErrAccountEmailExists = repository.ErrAccountEmailExists
	ErrWeakPassword       = errors.New("password does not meet the strength requirements")
	ErrLastSuperAdmin     = errors.New("cannot delete the last super admin")
)

type UserAdminRepository interface {
	CreateAccount(ctx context.Context, id, email, passwordHash string) (repository.Account, error)
	CreateAppUser(ctx context.Context, user domain.AppUser) (domain.AppUser, error)
	FindByID(ctx context.Context, id string) (domain.AppUser, error)
	FindAll(ctx context.Context) ([]domain.AppUser, error)
	Update(ctx context.Context, id string, update domain.AppUserUpdate) (domain.AppUser, error)
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

// UserAdminService manages application-level user profiles and their
// identity accounts. Every mutation is gated on the acting identity's
// capabilities; row-level security in the store is the final authority.
type UserAdminService struct {
	repo UserAdminRepository
}

func NewUserAdminService(repo UserAdminRepository) *UserAdminService {
	return &UserAdminService{
		repo: repo,
	}
}

// CreateUser provisions a fresh identity account and the linked AppUser
// profile. The new account is created directly against the store, so the
// acting admin's own session is never touched.
func (s *UserAdminService) CreateUser(ctx context.Context, acting domain.ActingUser, email, password string, profile domain.AppUser) (domain.AppUser, error) {
	if !acting.Capabilities().CanManageUsers {
		return domain.AppUser{}, ErrPermissionDenied
	}

	if validation := sanitize.ValidatePassword(password); !validation.IsValid {
		return domain.AppUser{}, fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(validation.Errors, ", "))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AppUser{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	account, err := s.repo.CreateAccount(ctx, uuid.NewString(), email, string(hash))
	if err != nil {
		return domain.AppUser{}, fmt.Errorf("s.repo.CreateAccount -> %w", err)
	}

	profile.ID = account.ID

	created, err := s.repo.CreateAppUser(ctx, profile)
	if err != nil {
		// The identity account created above stays behind. It cannot log
		// in without a profile row, but a retry on the same email will
		// report ErrAccountEmailExists until the orphan is removed.
		return domain.AppUser{}, fmt.Errorf("s.repo.CreateAppUser -> %w", err)
	}

	return created, nil
}

func (s *UserAdminService) GetUser(ctx context.Context, id string) (domain.AppUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.AppUser{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserAdminService) ListUsers(ctx context.Context, acting domain.ActingUser) ([]domain.AppUser, error) {
	if !acting.Capabilities().CanManageUsers {
		return nil, ErrPermissionDenied
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

func (s *UserAdminService) UpdateUser(ctx context.Context, acting domain.ActingUser, id string, update domain.AppUserUpdate) (domain.AppUser, error) {
	if !acting.Capabilities().CanManageUsers {
		return domain.AppUser{}, ErrPermissionDenied
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.AppUser{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteUser removes the application profile only; the identity account
// stays behind. Deleting the final super admin is refused outright.
func (s *UserAdminService) DeleteUser(ctx context.Context, acting domain.ActingUser, id string) error {
	if !acting.Capabilities().CanManageUsers {
		return ErrPermissionDenied
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if target.Role == domain.RoleSuperAdmin {
		count, err := s.repo.CountByRole(ctx, domain.RoleSuperAdmin)
		if err != nil {
			return fmt.Errorf("s.repo.CountByRole -> %w", err)
		}
		if count <= 1 {
			return ErrLastSuperAdmin
		}
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
